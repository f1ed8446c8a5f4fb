package transport

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/northpine-labs/linkvault-back/internal/db"
)

func (s *HTTPServer) CollectionGetAll(c echo.Context) error {
	collections, err := s.collections.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, collectionResps(collections))
}

func (s *HTTPServer) CollectionGetByID(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	collection, err := s.collections.ByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, collectionResp(collection))
}

func (s *HTTPServer) CollectionCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := CollectionReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	userID := req.UserID
	if userID == 0 {
		userID = user.ID
	}

	collection, err := s.collections.Create(c.Request().Context(), userID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, collectionResp(collection))
}

func (s *HTTPServer) CollectionUpdate(c echo.Context) error {
	req := CollectionUpdateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	collection, err := s.collections.Update(c.Request().Context(), req.ID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, collectionResp(collection))
}

func (s *HTTPServer) CollectionDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.collections.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MsgResp{Msg: fmt.Sprintf("Collection %d deleted successfully", id)})
}

func (s *HTTPServer) CollectionBookmarks(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	bookmarks, err := s.collections.BookmarksIn(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmarkResps(bookmarks))
}

func (s *HTTPServer) CollectionAttachBookmark(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := AttachBookmarkReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	row, err := s.collections.AttachBookmark(c.Request().Context(), id, req.BookmarkID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CollectionBookmarkResp{
		CollectionID: row.CollectionID,
		BookmarkID:   row.BookmarkID,
		CreatedAt:    row.CreatedAt,
	})
}

func (s *HTTPServer) CollectionDetachBookmark(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	bookmarkID, err := GetAndParseParam(c, "bookmarkId")
	if err != nil {
		return err
	}

	if err := s.collections.DetachBookmark(c.Request().Context(), id, bookmarkID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MsgResp{Msg: fmt.Sprintf("Removed bookmark %d from collection %d", bookmarkID, id)})
}

func collectionResp(col *db.Collection) CollectionResp {
	return CollectionResp{
		ID:          col.ID,
		UserID:      col.UserID,
		Name:        col.Name,
		Description: col.Description,
		CreatedAt:   col.CreatedAt,
		UpdatedAt:   col.UpdatedAt,
	}
}

func collectionResps(collections []db.Collection) []CollectionResp {
	resp := make([]CollectionResp, len(collections))
	for i := range collections {
		resp[i] = collectionResp(&collections[i])
	}
	return resp
}
