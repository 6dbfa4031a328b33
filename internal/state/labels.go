package state

// Localizer resolves user-facing strings by key.
type Localizer interface {
	Lookup(key string) (string, bool)
}

// String keys read by the reducers.
const (
	KeyListTitle     = "album_list_title"
	KeyListLoading   = "album_list_loading"
	KeyListError     = "album_list_error"
	KeyListRetry     = "album_list_retry"
	KeyDetailTitle   = "album_detail_title"
	KeyDetailLoading = "album_detail_loading"
	KeyDetailError   = "album_detail_error"
	KeyDetailRetry   = "album_detail_retry"
)

// Labels are the per-fetch strings a reducer needs.
type Labels struct {
	Loading string
	Error   string
	Retry   string
}

// text degrades a nil localizer or a missing key to "".
func text(loc Localizer, key string) string {
	if loc == nil {
		return ""
	}
	v, ok := loc.Lookup(key)
	if !ok {
		return ""
	}
	return v
}

func listLabels(loc Localizer) Labels {
	return Labels{
		Loading: text(loc, KeyListLoading),
		Error:   text(loc, KeyListError),
		Retry:   text(loc, KeyListRetry),
	}
}

func detailLabels(loc Localizer) Labels {
	return Labels{
		Loading: text(loc, KeyDetailLoading),
		Error:   text(loc, KeyDetailError),
		Retry:   text(loc, KeyDetailRetry),
	}
}
