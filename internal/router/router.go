package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"readit/internal/handlers"
	"readit/internal/middleware"
	"readit/internal/services"
)

// RegisterRoutes wires the services and handlers onto the engine. The image
// store directory is also served statically under /images.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, images *services.ImageStore) {
	postService := services.NewPostService(db)
	subService := services.NewSubService(db, images, postService)
	voteService := services.NewVoteService(db, postService)

	authHandler := handlers.NewAuthHandler(db)
	postHandler := handlers.NewPostHandler(postService)
	subHandler := handlers.NewSubHandler(subService)
	voteHandler := handlers.NewVoteHandler(voteService)
	userHandler := handlers.NewUserHandler(db, postService)

	r.Use(middleware.TrimStrings())
	r.Use(middleware.LoadUser(db))

	r.Static("/images", images.Dir())

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		auth.GET("/logout", middleware.AuthRequired(), authHandler.Logout)
	}

	posts := r.Group("/posts")
	{
		posts.GET("", postHandler.List)
		posts.POST("", middleware.AuthRequired(), postHandler.Create)
		posts.GET("/:identifier/:slug", postHandler.Detail)
		posts.GET("/:identifier/:slug/comments", postHandler.ListComments)
		posts.POST("/:identifier/:slug/comments", middleware.AuthRequired(), postHandler.CreateComment)
	}

	subs := r.Group("/subs")
	{
		subs.POST("", middleware.AuthRequired(), subHandler.Create)
		subs.GET("/search/:name", subHandler.Search)
		subs.GET("/:name", subHandler.Get)
		subs.POST("/:name/image", middleware.AuthRequired(), subHandler.UploadImage)
	}

	misc := r.Group("/misc")
	{
		misc.POST("/vote", middleware.AuthRequired(), voteHandler.Vote)
		misc.GET("/top-subs", subHandler.TopSubs)
	}

	r.GET("/users/:username", userHandler.Profile)
}
