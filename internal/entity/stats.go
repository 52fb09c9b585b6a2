package entity

// Statistics is the store-wide inventory summary. Loading it is best-effort
// everywhere: the storefront renders fine without it.
type Statistics struct {
	TotalItems   int64
	WithStock    int64
	WithoutStock int64
	TotalStock   int64
}
