package handlers

import (
	"github.com/njb1/what2do/internal/service"
)

const (
	msgTaskAdded   = "Task added successfully!"
	msgTaskUpdated = "Task updated successfully!"
	msgTaskDeleted = "Task deleted successfully!"

	indexMessage = "What2Do API is running."
)

type Handler struct {
	Tasks *service.TaskService
}

func NewHandler(tasks *service.TaskService) *Handler {
	return &Handler{Tasks: tasks}
}
