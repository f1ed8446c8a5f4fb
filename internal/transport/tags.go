package transport

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/northpine-labs/linkvault-back/internal/db"
)

func (s *HTTPServer) TagGetAll(c echo.Context) error {
	tags, err := s.tags.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tagResps(tags))
}

func (s *HTTPServer) TagGetByID(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	tag, err := s.tags.ByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tagResp(tag))
}

func (s *HTTPServer) TagCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := TagReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	tag, err := s.tags.Create(c.Request().Context(), user.ID, req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tagResp(tag))
}

func (s *HTTPServer) TagUpdate(c echo.Context) error {
	req := TagUpdateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	tag, err := s.tags.Update(c.Request().Context(), req.ID, req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tagResp(tag))
}

func (s *HTTPServer) TagDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.tags.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MsgResp{Msg: fmt.Sprintf("Tag %d deleted successfully", id)})
}

func (s *HTTPServer) TagBookmarks(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	bookmarks, err := s.tags.BookmarksFor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmarkResps(bookmarks))
}

func tagResp(t *db.Tag) TagResp {
	return TagResp{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func tagResps(tags []db.Tag) []TagResp {
	resp := make([]TagResp, len(tags))
	for i := range tags {
		resp[i] = tagResp(&tags[i])
	}
	return resp
}
