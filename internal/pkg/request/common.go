package request

// ByIDRequest is a common struct for endpoints that require a numeric ID path parameter.
type ByIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// ListParams carries the optional from/size pagination query parameters.
// Both must be given for the result to be windowed; otherwise the full
// list is returned, which is what the API contract promises.
type ListParams struct {
	From *int `form:"from" binding:"omitempty,min=0"`
	Size *int `form:"size" binding:"omitempty,min=1"`
}

// Window translates the parameters into a limit/offset pair.
// A zero limit means the caller did not ask for pagination.
func (p ListParams) Window() (limit, offset uint64) {
	if p.Size == nil {
		return 0, 0
	}
	limit = uint64(*p.Size)
	if p.From != nil {
		offset = uint64(*p.From)
	}
	return limit, offset
}
