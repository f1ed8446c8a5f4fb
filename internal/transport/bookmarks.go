package transport

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/northpine-labs/linkvault-back/internal/db"
)

func (s *HTTPServer) BookmarkGetAll(c echo.Context) error {
	bookmarks, err := s.bookmarks.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmarkResps(bookmarks))
}

func (s *HTTPServer) BookmarkGetByID(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	bookmark, err := s.bookmarks.ByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmarkResp(bookmark))
}

func (s *HTTPServer) BookmarkCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := BookmarkReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	// Body may name another owner; the authenticated user is the default.
	userID := req.UserID
	if userID == 0 {
		userID = user.ID
	}

	bookmark, err := s.bookmarks.Create(c.Request().Context(), userID, req.Title, req.Link, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bookmarkResp(bookmark))
}

func (s *HTTPServer) BookmarkUpdate(c echo.Context) error {
	req := BookmarkUpdateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	bookmark, err := s.bookmarks.Update(c.Request().Context(), req.ID, req.Title, req.Link, req.Description, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmarkResp(bookmark))
}

func (s *HTTPServer) BookmarkDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.bookmarks.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MsgResp{Msg: fmt.Sprintf("Bookmark %d deleted successfully", id)})
}

func (s *HTTPServer) BookmarkTags(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	tags, err := s.bookmarks.TagsFor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tagResps(tags))
}

func (s *HTTPServer) BookmarkAttachTag(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := AttachTagReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	row, err := s.bookmarks.AttachTag(c.Request().Context(), id, req.TagID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, BookmarkTagResp{
		BookmarkID: row.BookmarkID,
		TagID:      row.TagID,
		CreatedAt:  row.CreatedAt,
	})
}

func (s *HTTPServer) BookmarkDetachTag(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	tagID, err := GetAndParseParam(c, "tagId")
	if err != nil {
		return err
	}

	if err := s.bookmarks.DetachTag(c.Request().Context(), id, tagID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MsgResp{Msg: fmt.Sprintf("Removed tag %d from bookmark %d", tagID, id)})
}

func (s *HTTPServer) BookmarkCollections(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	collections, err := s.bookmarks.CollectionsFor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, collectionResps(collections))
}

func bookmarkResp(b *db.Bookmark) BookmarkResp {
	return BookmarkResp{
		ID:          b.ID,
		UserID:      b.UserID,
		Title:       b.Title,
		Link:        b.Link,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func bookmarkResps(bookmarks []db.Bookmark) []BookmarkResp {
	resp := make([]BookmarkResp, len(bookmarks))
	for i := range bookmarks {
		resp[i] = bookmarkResp(&bookmarks[i])
	}
	return resp
}
