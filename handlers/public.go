package handlers

import (
	"net/http"

	"hostel-shop-api/models"
	"hostel-shop-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetStateMachineInfo returns the order lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To})
	}

	terminal := []models.OrderStatus{}
	for _, s := range statemachine.KnownStatuses() {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"statuses":        statemachine.KnownStatuses(),
		"terminal_states": terminal,
		"enforced":        false,
		"description":     "Hostel Shop Order Lifecycle. Admins may set any known status; moves outside this table are logged.",
	})
}

// Health reports liveness
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Hostel Shop API",
		"version": "1.0.0",
	})
}
