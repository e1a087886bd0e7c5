package domain

// ValidateLimit rejects negative limits. Zero is allowed and yields no rows.
func ValidateLimit(limit int) error {
	if limit < 0 {
		return &ValidationError{Arg: "limit", Value: limit, Err: ErrInvalidLimit}
	}
	return nil
}

// ValidatePage validates a limit/offset pair, limit first.
func ValidatePage(limit, offset int) error {
	if err := ValidateLimit(limit); err != nil {
		return err
	}
	if offset < 0 {
		return &ValidationError{Arg: "offset", Value: offset, Err: ErrInvalidOffset}
	}
	return nil
}
