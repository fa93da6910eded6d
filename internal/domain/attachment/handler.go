package attachment

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const visitDateLayout = "2006-01-02"

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/attachments", h.Upload)
	g.GET("/attachments", h.List)
	g.GET("/attachments/:name", h.Download)
}

// folderKeyFromRequest reads full_name and visit_date, from the form on
// uploads and from the query string on reads, and derives the folder.
func folderKeyFromRequest(c echo.Context) (string, error) {
	fullName := c.FormValue("full_name")
	if fullName == "" {
		fullName = c.QueryParam("full_name")
	}
	rawDate := c.FormValue("visit_date")
	if rawDate == "" {
		rawDate = c.QueryParam("visit_date")
	}
	if fullName == "" || rawDate == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "full_name and visit_date are required")
	}
	visitDate, err := time.Parse(visitDateLayout, rawDate)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "visit_date must be YYYY-MM-DD")
	}
	return FolderKey(fullName, visitDate), nil
}

func (h *Handler) Upload(c echo.Context) error {
	folderKey, err := folderKeyFromRequest(c)
	if err != nil {
		return err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	headers := form.File["files"]

	files := make([]File, 0, len(headers))
	var closers []io.Closer
	defer func() {
		for _, cl := range closers {
			cl.Close()
		}
	}()
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		closers = append(closers, src)
		files = append(files, File{Name: fh.Filename, Reader: src})
	}

	if err := h.store.Save(folderKey, files); err != nil {
		switch {
		case errors.Is(err, ErrNoFiles), errors.Is(err, ErrTooManyFiles), errors.Is(err, ErrInvalidName):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"folder": folderKey,
		"files":  names,
	})
}

func (h *Handler) List(c echo.Context) error {
	folderKey, err := folderKeyFromRequest(c)
	if err != nil {
		return err
	}
	names, err := h.store.List(folderKey)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "attachment folder not found")
		case errors.Is(err, ErrInvalidName):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"folder": folderKey,
		"files":  names,
	})
}

func (h *Handler) Download(c echo.Context) error {
	folderKey, err := folderKeyFromRequest(c)
	if err != nil {
		return err
	}
	name := c.Param("name")
	f, err := h.store.Open(folderKey, name)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "attachment not found")
		case errors.Is(err, ErrInvalidName):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	defer f.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, name))
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, f)
}
