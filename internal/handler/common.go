package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"grievance-portal/internal/domain"
	"grievance-portal/internal/middleware"
)

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + name)
	}
	return id, nil
}

func paginationFromQuery(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()
	if page := c.QueryInt("page"); page > 0 {
		params.Page = page
	}
	if size := c.QueryInt("page_size"); size > 0 {
		params.PageSize = size
	}
	params.Validate()
	return params
}
