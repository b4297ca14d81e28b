package v1

import (
	"net/http"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatUC domain.ChatUsecase
}

func NewChatHandler(protected *gin.RouterGroup, chatUC domain.ChatUsecase) {
	handler := &ChatHandler{chatUC: chatUC}
	protected.POST("/chat", handler.Send)
}

type ChatRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

// Send godoc
// @Summary      Ask the farming assistant
// @Description  Replies in the caller's preferred language.
// @Tags         chat
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ChatRequest  true  "User message"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /chat [post]
func (h *ChatHandler) Send(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	lang := domain.Language(c.GetString(string(domain.KeyLanguage)))
	if lang != domain.LanguageHindi {
		lang = domain.LanguageEnglish
	}

	reply, err := h.chatUC.Reply(c.Request.Context(), req.Message, lang)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Reply generated", reply)
}
