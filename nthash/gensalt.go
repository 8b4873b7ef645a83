package nthash

// GenSalt writes the setting for this scheme into out.
//
// The scheme has no salt and no cost factor, so rbytes is ignored and count
// must be zero. out must hold at least [SettingSize] bytes. On success
// out[:SettingSize] is "$3$" followed by a NUL byte; on error out is not
// modified. ErrInsufficientSpace takes precedence over ErrInvalidInput.
func GenSalt(count uint64, rbytes []byte, out []byte) error {
	if len(out) < SettingSize {
		return ErrInsufficientSpace
	}
	if count != 0 {
		return ErrInvalidInput
	}

	n := copy(out, Prefix)
	out[n] = 0
	return nil
}

// Setting returns the setting string for this scheme.
func Setting() string {
	return Prefix
}
