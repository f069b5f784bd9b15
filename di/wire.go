//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"campus/config"
	"campus/infras/kafka"
	"campus/infras/otel"
	"campus/infras/postgres"
	"campus/infras/redis"
	"campus/shared/cache"
	"campus/transport/http"
	"campus/transport/http/middleware"
	"campus/transport/http/router"

	bookingRepository "campus/internal/domains/booking/repository"
	bookingService "campus/internal/domains/booking/service"
	equipmentRepository "campus/internal/domains/equipment/repository"
	equipmentService "campus/internal/domains/equipment/service"
	programRepository "campus/internal/domains/program/repository"
	programService "campus/internal/domains/program/service"
	responsibleService "campus/internal/domains/responsible/service"
	roomRepository "campus/internal/domains/room/repository"
	roomService "campus/internal/domains/room/service"
	teacherRepository "campus/internal/domains/teacher/repository"
	teacherService "campus/internal/domains/teacher/service"

	bookingHandler "campus/internal/handlers/booking"
	equipmentHandler "campus/internal/handlers/equipment"
	programHandler "campus/internal/handlers/program"
	responsibleHandler "campus/internal/handlers/responsible"
	roomHandler "campus/internal/handlers/room"
	statusHandler "campus/internal/handlers/status"
	teacherHandler "campus/internal/handlers/teacher"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var teacherDomain = wire.NewSet(
	teacherRepository.New,
	teacherService.New,
)

var programDomain = wire.NewSet(
	programRepository.New,
	programService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var equipmentDomain = wire.NewSet(
	equipmentRepository.New,
	equipmentService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var responsibleDomain = wire.NewSet(
	responsibleService.New,
)

var domains = wire.NewSet(
	teacherDomain,
	programDomain,
	roomDomain,
	equipmentDomain,
	bookingDomain,
	responsibleDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	statusHandler.New,
	teacherHandler.New,
	programHandler.New,
	roomHandler.New,
	equipmentHandler.New,
	bookingHandler.New,
	responsibleHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
