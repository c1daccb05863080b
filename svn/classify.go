package svn

// Classify maps a raw change record to its change kind.
//
// A usable copy source wins over the letter code: the repository reports
// copies under the letter of the carrying action (usually "A"), so the
// letter alone cannot tell a copy from a plain add.
func Classify(rc RawPathChange) (ChangeKind, error) {
	if rc.CopyFrom != nil && rc.CopyFrom.Revision >= 0 {
		return ChangeKindCopy, nil
	}

	switch rc.Code {
	case 'A':
		return ChangeKindAdd, nil
	case 'M':
		return ChangeKindEdit, nil
	case 'D':
		return ChangeKindDelete, nil
	case 'R':
		return ChangeKindReplace, nil
	default:
		return 0, &UnknownCodeError{Code: rc.Code}
	}
}
