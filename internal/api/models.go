package api

import (
	"github.com/mastercp/arena/internal/database"
	"github.com/mastercp/arena/internal/service/catalog_service"
	"github.com/mastercp/arena/internal/service/contest_service"
	"github.com/mastercp/arena/internal/service/leaderboard_service"
	"github.com/mastercp/arena/internal/service/user_service"
)

type Api struct {
	DB                       database.Store
	UserServiceConfig        *user_service.UserService
	ContestServiceConfig     *contest_service.ContestService
	LeaderboardServiceConfig *leaderboard_service.LeaderboardService
	CatalogServiceConfig     *catalog_service.CatalogService
}
