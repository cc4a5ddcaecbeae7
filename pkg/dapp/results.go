package dapp

// ReadResult is the data of a private read. When the dapp does not exist,
// Exists is false and Item is nil; the response still succeeds, on a 404.
type ReadResult struct {
	Exists bool     `json:"exists"`
	Item   *ApiItem `json:"item"`
}

// NewReadResult wraps item, which may be nil.
func NewReadResult(item *ApiItem) ReadResult {
	return ReadResult{Exists: item != nil, Item: item}
}

// ViewResult is the data of a public view: only the Core fields are shown.
type ViewResult struct {
	Exists bool  `json:"exists"`
	Item   *Core `json:"item"`
}

// NewViewResult wraps item, which may be nil.
func NewViewResult(item *Core) ViewResult {
	return ViewResult{Exists: item != nil, Item: item}
}

// ListResult is the data of a list call.
type ListResult struct {
	Count int       `json:"count"`
	Items []ApiItem `json:"items"`
}

// NewListResult counts items. A nil slice is written as [].
func NewListResult(items []ApiItem) ListResult {
	if items == nil {
		items = []ApiItem{}
	}
	return ListResult{Count: len(items), Items: items}
}
