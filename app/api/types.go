package api

import (
	"github.com/kunwoo0421/GovernmentSupportProject/app/database"
	"github.com/kunwoo0421/GovernmentSupportProject/app/sources"
)

type Handler struct {
	service *sources.Service
	repo    *database.NoticeRepository
}
