package v1

import (
	"net/http"

	"ninetytozero-backend/internal/delivery/http/response"
	"ninetytozero-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type BuyoutHandler struct {
	buyoutUC domain.BuyoutUsecase
}

func NewBuyoutHandler(public *gin.RouterGroup, buyoutUC domain.BuyoutUsecase) {
	handler := &BuyoutHandler{buyoutUC: buyoutUC}
	public.POST("/candidates/calculate-buyout", handler.Calculate)
}

// Calculate godoc
// @Summary      Notice period buyout
// @Description  Daily salary is monthly salary / 30; buyout is daily salary times notice days. Both rounded to 2 decimals.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        input  body      domain.BuyoutInput  true  "Salary and notice period"
// @Success      200    {object}  response.Response{data=domain.BuyoutResult}
// @Failure      422    {object}  response.Response
// @Router       /candidates/calculate-buyout [post]
func (h *BuyoutHandler) Calculate(c *gin.Context) {
	var req domain.BuyoutInput
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.buyoutUC.Calculate(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Buyout calculated successfully", result)
}
