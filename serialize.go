package plaidsheets

// Serialize turns an ordered batch of uniformly-shaped records into a 2D
// block ready for the storage writer. Column order is the insertion order of
// the first record, so transforms must keep the column set identical across
// the batch or header and rows will misalign.
//
// When includeHeaders is true and the batch is non-empty, a header row with
// the column names is prepended. An empty batch yields an empty block which
// writers treat as a no-op.
func Serialize(records []Record, includeHeaders bool) [][]any {
	if len(records) == 0 {
		return nil
	}

	columns := records[0].Columns()
	block := make([][]any, 0, len(records)+1)

	if includeHeaders {
		header := make([]any, len(columns))
		for i, c := range columns {
			header[i] = string(c)
		}
		block = append(block, header)
	}

	for _, r := range records {
		row := make([]any, len(columns))
		for i, c := range columns {
			v := r.Value(c)
			if v == nil {
				v = ""
			}
			row[i] = v
		}
		block = append(block, row)
	}
	return block
}
