// Package http provides the Fiber handlers implementing the inbound ports.
package http

import (
	"io"
	"mime/multipart"

	"rental_server/core/domain"
	"rental_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserID extracts the authenticated user id placed by the auth middleware
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	val := c.Locals("user_id")
	if val == nil {
		return uuid.Nil, apperr.Unauthorized("")
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, apperr.Unauthorized("")
	}
	return userID, nil
}

// ParamUUID parses a uuid path parameter
func ParamUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.InvalidInput(name, "must be a uuid")
	}
	return id, nil
}

// ParsePageOptions reads the shared listing query parameters. Unknown sort
// values are rejected rather than silently defaulted.
func ParsePageOptions(c *fiber.Ctx) (*domain.PageOptions, error) {
	opts := &domain.PageOptions{
		Keyword: c.Query("keyword"),
		Sort:    domain.Sort(c.Query("sort", string(domain.SortLastCreated))),
		Page:    c.QueryInt("page", 1),
		Take:    c.QueryInt("take", 10),
	}
	if !domain.ValidSort(opts.Sort) {
		return nil, apperr.InvalidInput("sort", string(opts.Sort))
	}
	if opts.Page < 1 {
		return nil, apperr.InvalidInput("page", "must be at least 1")
	}
	if opts.Take < 1 || opts.Take > 50 {
		return nil, apperr.InvalidInput("take", "must be between 1 and 50")
	}
	return opts, nil
}

func readUpload(fh *multipart.FileHeader) (*domain.UploadFile, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &domain.UploadFile{
		Filename: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

// FormFiles collects the uploaded files under the form field. A request
// without a multipart body yields an empty slice, not an error, so JSON
// and multipart both work on the same route.
func FormFiles(c *fiber.Ctx, field string) ([]*domain.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	headers := form.File[field]
	files := make([]*domain.UploadFile, 0, len(headers))
	for _, fh := range headers {
		file, err := readUpload(fh)
		if err != nil {
			return nil, apperr.BadRequest("unreadable upload: " + fh.Filename)
		}
		files = append(files, file)
	}
	return files, nil
}
