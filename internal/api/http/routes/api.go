package routes

import (
	"crypto/rsa"
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/wys-platform/project-service/internal/auth/middleware"
	authrepo "github.com/wys-platform/project-service/internal/auth/repository"
	projectshttp "github.com/wys-platform/project-service/internal/projects/http"
	"github.com/wys-platform/project-service/internal/projects/repository"
	"github.com/wys-platform/project-service/internal/projects/service"
	"github.com/wys-platform/project-service/internal/projects/siblings"
)

type APIDeps struct {
	DB        *sql.DB
	Redis     *redis.Client
	PublicKey *rsa.PublicKey
	Siblings  *siblings.Client
	Parallel  bool
}

// RegisterAPI mounts /api/projects behind the bearer guard. Redis is optional;
// without it revoked token ids are not checked.
func RegisterAPI(r *gin.Engine, dep APIDeps) {
	var revocations middleware.RevocationChecker
	if dep.Redis != nil {
		revocations = authrepo.NewRevocationRepository(dep.Redis)
	}

	api := r.Group("/api")
	api.Use(middleware.BearerAuth(dep.PublicKey, revocations))

	projectRepo := repository.NewProjectRepository(dep.DB)
	assembler := service.NewAssembler(dep.Siblings, dep.Parallel)
	projectService := service.NewProjectService(projectRepo, assembler)

	projectsGroup := api.Group("/projects")
	projectshttp.New(projectService).Register(projectsGroup)
}
