package dto

type PaginationMetadata struct {
	TotalCount uint64 `json:"total_count"`
	Page       uint64 `json:"page"`
	Limit      int    `json:"limit"`
}

type PaginationResponse struct {
	Metadata PaginationMetadata `json:"_metadata"`
	Records  interface{}        `json:"records"`
}

func NewPaginationResponse(records interface{}, total int64, filter Filter) PaginationResponse {
	return PaginationResponse{
		Metadata: PaginationMetadata{
			TotalCount: uint64(total),
			Page:       uint64(filter.Page),
			Limit:      filter.Limit,
		},
		Records: records,
	}
}
