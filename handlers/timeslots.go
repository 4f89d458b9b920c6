package handlers

import (
	"net/http"

	"rideconnect/models"
	"rideconnect/services/timeslot"

	"github.com/gin-gonic/gin"
)

type TimeslotHandler struct {
	Slots timeslot.SlotAvailabilityManager
}

func NewTimeslotHandler(slots timeslot.SlotAvailabilityManager) *TimeslotHandler {
	return &TimeslotHandler{Slots: slots}
}

func (h *TimeslotHandler) GetTimeslotsHandler(c *gin.Context) {
	slots, err := h.Slots.EnsureSlotsForDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, "Failed to fetch timeslots", err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *TimeslotHandler) GetAvailableTimeslotsHandler(c *gin.Context) {
	slots, err := h.Slots.ListAvailable(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, "Failed to fetch available timeslots", err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *TimeslotHandler) CreateTimeslotHandler(c *gin.Context) {
	var req models.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	slot, err := h.Slots.CreateSlot(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create timeslot", err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

func (h *TimeslotHandler) UpdateTimeslotHandler(c *gin.Context) {
	var upd models.SlotUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	slot, err := h.Slots.UpdateSlot(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondError(c, "Failed to update timeslot", err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *TimeslotHandler) DeleteTimeslotHandler(c *gin.Context) {
	deleted, err := h.Slots.DeleteSlot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to delete timeslot", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Time slot not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time slot deleted"})
}
