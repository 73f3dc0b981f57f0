package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
	"github.com/dmitrijs2005/dogcatalog/internal/server/access"
	"github.com/dmitrijs2005/dogcatalog/internal/server/models"
	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type dataResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, message("Invalid request body"))
}

func (s *Server) hello(c echo.Context) error {
	return c.JSON(http.StatusOK, message("Hello from server!"))
}

func (s *Server) register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	ctx := c.Request().Context()
	u, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	s.logger.Info(ctx, "Registered", "username", u.Username, "id", u.ID)
	return c.JSON(http.StatusOK, message("User registered successfully"))
}

func (s *Server) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	token, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return c.JSON(http.StatusUnauthorized, message("Invalid credentials"))
		}
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// listDogs returns the whole catalog, or the newest entry with the given
// name when ?name= is present.
func (s *Server) listDogs(c echo.Context) error {
	ctx := c.Request().Context()

	if name := c.QueryParam("name"); name != "" {
		dog, err := s.dogs.GetByName(ctx, name)
		if err != nil {
			return s.writeError(c, err)
		}
		return c.JSON(http.StatusOK, dog)
	}

	dogs, err := s.dogs.List(ctx)
	if err != nil {
		return s.writeError(c, err)
	}
	if dogs == nil {
		dogs = []models.Dog{}
	}
	return c.JSON(http.StatusOK, dogs)
}

func (s *Server) getDog(c echo.Context) error {
	dog, err := s.dogs.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, dog)
}

func (s *Server) dogImage(c echo.Context) error {
	ctx := c.Request().Context()

	dog, err := s.dogs.GetByID(ctx, c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	if s.images == nil {
		return c.JSON(http.StatusNotFound, message("Image not available"))
	}

	url, err := s.images.ResolveImage(ctx, dog.Image)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return c.JSON(http.StatusNotFound, message("Image not available"))
		}
		return s.writeError(c, err)
	}
	return c.Redirect(http.StatusTemporaryRedirect, url)
}

func (s *Server) createDog(c echo.Context) error {
	var fields models.DogFields
	if err := c.Bind(&fields); err != nil {
		return invalidBody(c)
	}

	ctx := c.Request().Context()
	dog, err := s.dogs.Create(ctx, fields)
	if err != nil {
		return s.writeError(c, err)
	}

	id, _ := access.IdentityFromContext(ctx)
	s.logger.Info(ctx, "dog created", "id", dog.ID, "by", id.Principal, "method", id.Method)
	return c.JSON(http.StatusOK, dataResponse{
		Message: "Data received and saved successfully",
		Data:    dog.ID,
	})
}

func (s *Server) updateDog(c echo.Context) error {
	var fields models.DogFields
	if err := c.Bind(&fields); err != nil {
		return invalidBody(c)
	}

	ctx := c.Request().Context()
	dog, err := s.dogs.Update(ctx, c.Param("id"), fields)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Dog updated successfully", Data: dog})
}

func (s *Server) deleteDog(c echo.Context) error {
	if err := s.dogs.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, message("Dog deleted successfully"))
}
