package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kanban-api/internal/dto"
	"kanban-api/internal/response"
	"kanban-api/internal/service"
)

// BoardHandler exposes board endpoints
type BoardHandler struct {
	boardService service.BoardService
	logger       *zap.Logger
}

// NewBoardHandler creates the board handler
func NewBoardHandler(boardService service.BoardService, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{boardService: boardService, logger: logger}
}

// GetBoards godoc
// @Summary Get the caller's boards as full aggregates
// @Description Columns and tasks come back in display order with tags,
// @Description subtasks and attachments joined. An admin may pass userId
// @Description to fetch another user's boards; for everyone else the
// @Description parameter is ignored.
// @Tags boards
// @Produce json
// @Param userId query string false "Owner ID (admin only)"
// @Success 200 {array} domain.Board
// @Router /api/boards [get]
func (h *BoardHandler) GetBoards(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var target *uuid.UUID
	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid userId", raw))
			return
		}
		target = &id
	}

	boards, err := h.boardService.GetBoards(c.Request.Context(), actor, target)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

// GetBoard godoc
// @Summary Get one board with columns and tasks in display order
// @Tags boards
// @Produce json
// @Param id path string true "Board ID"
// @Success 200 {object} domain.Board
// @Router /api/boards/{id} [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(c.Request.Context(), actor, boardID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// CreateBoard godoc
// @Summary Create an empty board
// @Tags boards
// @Accept json
// @Produce json
// @Param request body dto.CreateBoardRequest true "Board"
// @Success 201 {object} domain.Board
// @Router /api/boards [post]
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	board, err := h.boardService.CreateBoard(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

// UpdateBoard godoc
// @Summary Rename a board
// @Tags boards
// @Accept json
// @Produce json
// @Param id path string true "Board ID"
// @Param request body dto.UpdateBoardRequest true "Board"
// @Success 200 {object} domain.Board
// @Router /api/boards/{id} [put]
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	board, err := h.boardService.UpdateBoard(c.Request.Context(), actor, boardID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// DeleteBoard godoc
// @Summary Delete a board and everything inside it
// @Tags boards
// @Param id path string true "Board ID"
// @Success 204
// @Router /api/boards/{id} [delete]
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(c.Request.Context(), actor, boardID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
