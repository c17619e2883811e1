//go:build wireinject
// +build wireinject

package di

import (
	"dormhub/config"
	"dormhub/infras/jwt"
	"dormhub/infras/kafka"
	"dormhub/infras/otel"
	"dormhub/infras/postgres"
	"dormhub/infras/redis"
	"dormhub/infras/s3"
	"dormhub/permissions"
	"dormhub/shared/cache"
	"dormhub/transport/http"
	"dormhub/transport/http/middleware"
	"dormhub/transport/http/router"

	authService "dormhub/internal/domains/auth/service"
	bookingRepository "dormhub/internal/domains/booking/repository"
	bookingService "dormhub/internal/domains/booking/service"
	dormRepository "dormhub/internal/domains/dorm/repository"
	dormService "dormhub/internal/domains/dorm/service"
	facilityRepository "dormhub/internal/domains/facility/repository"
	facilityService "dormhub/internal/domains/facility/service"
	roomRepository "dormhub/internal/domains/room/repository"
	roomService "dormhub/internal/domains/room/service"
	userRepository "dormhub/internal/domains/user/repository"
	userService "dormhub/internal/domains/user/service"

	authHandler "dormhub/internal/handlers/auth"
	bookingHandler "dormhub/internal/handlers/booking"
	dormHandler "dormhub/internal/handlers/dorm"
	facilityHandler "dormhub/internal/handlers/facility"
	roomHandler "dormhub/internal/handlers/room"
	userHandler "dormhub/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userRepository.NewOwner,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var dormDomain = wire.NewSet(
	dormRepository.New,
	dormService.New,
	dormService.NewMedia,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewRoomType,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var facilityDomain = wire.NewSet(
	facilityRepository.New,
	facilityService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	dormDomain,
	roomDomain,
	bookingDomain,
	facilityDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	dormHandler.New,
	roomHandler.New,
	bookingHandler.New,
	facilityHandler.New,
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
