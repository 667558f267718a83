package controllers

import (
	"github.com/ashrith-07/campus-bites-sub000/app/services"
	"github.com/ashrith-07/campus-bites-sub000/pkg/apperr"
	"github.com/ashrith-07/campus-bites-sub000/pkg/ctx"
)

type UploadController struct {
	uploads *services.UploadService
}

func NewUploadController(uploads *services.UploadService) *UploadController {
	return &UploadController{uploads: uploads}
}

// Image accepts a multipart upload under the "image" field and stores
// it on the configured disk.
func (c *UploadController) Image(cx *ctx.Context) {
	if err := cx.R.ParseMultipartForm(services.MaxUploadBytes); err != nil {
		cx.Fail(apperr.InvalidInput("Malformed multipart request"))
		return
	}

	file, header, err := cx.R.FormFile("image")
	if err != nil {
		cx.Fail(apperr.InvalidInput("Missing image field"))
		return
	}
	defer file.Close()

	result, err := c.uploads.StoreImage(cx.Context(), file, header)
	if err != nil {
		cx.Fail(err)
		return
	}
	cx.Created(result)
}
