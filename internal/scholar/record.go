package scholar

// Merge combines a listing stub with its detail-page extraction.
// Detail values win whenever present; stub values fill the gaps.
func Merge(stub Stub, det Detail) Record {
	rec := Record{
		Title:       stub.Title,
		Year:        stub.Year,
		CitedBy:     stub.CitedBy,
		Description: det.Description,
		DetailURL:   stub.DetailURL,
		Series:      det.Series,
	}
	if det.Title != nil && *det.Title != "" {
		rec.Title = *det.Title
	}
	if det.Year != nil {
		rec.Year = det.Year
	}
	if det.CitedBy != nil {
		rec.CitedBy = det.CitedBy
	}
	return rec
}

// CitationsPerYear derives average citations per year since publication,
// with horizonEnd standing in for the current year. The span is floored
// at one year; nil inputs yield nil.
func CitationsPerYear(total, year *int, horizonEnd int) *float64 {
	if total == nil || year == nil {
		return nil
	}
	span := horizonEnd - *year + 1
	if span < 1 {
		span = 1
	}
	v := float64(*total) / float64(span)
	return &v
}

// FilterByHorizon drops records dated outside the horizon. Records
// without a year pass through.
func FilterByHorizon(recs []Record, h Horizon) []Record {
	kept := make([]Record, 0, len(recs))
	for _, r := range recs {
		if r.Year != nil && !h.Contains(*r.Year) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
