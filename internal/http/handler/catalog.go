package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"examcracker/internal/service"
)

type createSubsectionRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type createMaterialRequest struct {
	Name         string `json:"name"`
	Link         string `json:"link"`
	UploadMethod string `json:"upload_method"`
	FileData     string `json:"file_data"`
	FileName     string `json:"file_name"`
	SubsectionID *int64 `json:"subsection_id"`
}

// ListSubjects returns the seeded subjects ordered by display order.
func ListSubjects(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjects, err := svc.ListSubjects(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(subjects)
	}
}

// ListSubsections returns the subsections of a subject.
func ListSubsections(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid subject id")
		}
		subsections, err := svc.ListSubsections(c.UserContext(), subjectID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(subsections)
	}
}

// CreateSubsection creates a subsection under a subject. Admin only.
func CreateSubsection(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid subject id")
		}
		var req createSubsectionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body")
		}

		id, err := svc.CreateSubsection(c.UserContext(), subjectID, req.Name, req.Icon)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "id": id})
	}
}

// DeleteSubsection removes a subsection and its dependent material. Admin only.
func DeleteSubsection(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid subsection id")
		}
		if err := svc.DeleteSubsection(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Subsection not found")
			}
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// ListDocuments returns the documents attached to a subsection.
func ListDocuments(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subsectionID, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid subsection id")
		}
		docs, err := svc.ListDocuments(c.UserContext(), subsectionID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(docs)
	}
}

// CreateDocument stores a study-material reference, resolving its link through
// the upload resolver. Admin only.
func CreateDocument(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subsectionID, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid subsection id")
		}
		var req createMaterialRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body")
		}

		id, err := svc.CreateDocument(c.UserContext(), subsectionID, service.MaterialInput{
			Name:         req.Name,
			Link:         req.Link,
			UploadMethod: req.UploadMethod,
			FileData:     req.FileData,
			FileName:     req.FileName,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "id": id})
	}
}

// DeleteDocument removes a document. Admin only.
func DeleteDocument(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid document id")
		}
		if err := svc.DeleteDocument(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// ListQuestionPapers returns the question papers of a subject, including
// orphaned papers with a null subsection name.
func ListQuestionPapers(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid subject id")
		}
		papers, err := svc.ListQuestionPapers(c.UserContext(), subjectID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(papers)
	}
}

// CreateQuestionPaper stores a past-exam reference. Admin only.
func CreateQuestionPaper(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid subject id")
		}
		var req createMaterialRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body")
		}

		id, err := svc.CreateQuestionPaper(c.UserContext(), subjectID, req.SubsectionID, service.MaterialInput{
			Name:         req.Name,
			Link:         req.Link,
			UploadMethod: req.UploadMethod,
			FileData:     req.FileData,
			FileName:     req.FileName,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "id": id})
	}
}

// DeleteQuestionPaper removes a question paper. Admin only.
func DeleteQuestionPaper(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid question paper id")
		}
		if err := svc.DeleteQuestionPaper(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Question paper not found")
			}
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// writeServiceError translates service-layer failures into the wire taxonomy:
// validation problems answer 400 with a field-identifying message, everything
// else answers 500 with the upstream failure reason embedded.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrFileDataRequired),
		errors.Is(err, service.ErrInvalidFileData),
		errors.Is(err, service.ErrInvalidUploadMethod):
		return writeError(c, fiber.StatusBadRequest, err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
}
