package wavload

// Clone returns a copy of a that owns its data, fmt payload and seek table,
// so it no longer borrows the decoded buffer.
func (a *Audio) Clone() *Audio {
	if a == nil {
		return nil
	}

	out := *a
	out.FmtChunk = append([]byte(nil), a.FmtChunk...)
	out.Data = append([]byte(nil), a.Data...)

	if a.Extensible != nil {
		ext := *a.Extensible
		out.Extensible = &ext
	}

	if a.Table != nil {
		out.Table = &Table{ID: a.Table.ID, raw: append([]byte(nil), a.Table.raw...)}
	}

	return &out
}
