package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/toolomni/engine/internal/ai/writer"
	"github.com/toolomni/engine/internal/pdf"
	"github.com/toolomni/engine/pkg/logx"
	"github.com/toolomni/engine/tools/conversion"
	"github.com/toolomni/engine/tools/conversion/convertapi"
	"github.com/toolomni/engine/tools/conversion/convertinfra"
	"github.com/toolomni/engine/tools/conversion/convertsrv"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	Redis *redis.Client // nil when REDIS_ADDR is unset

	// Engines
	Codec      *pdf.Codec
	Rasterizer *pdf.Rasterizer

	// Services
	ConvertService *convertsrv.Service

	// API Handlers
	ConvertHandlers *convertapi.ConvertHandlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Redis (optional). Without it, metadata resolution skips the cache.
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr != "" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASS"),
			DB:       0,
		})
		if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
	} else {
		logx.Warn("REDIS_ADDR is not set, video metadata caching disabled")
	}

	// 2. Document engines
	c.Codec = pdf.NewCodec()
	c.Rasterizer = pdf.NewRasterizer(pdf.RasterConfig{
		MaxPages: envInt("MAX_RENDER_PAGES", 0),
	})
}

func (c *Container) initServices() {
	// Video metadata resolver
	rapidAPIKey := os.Getenv("RAPIDAPI_KEY")
	if rapidAPIKey == "" {
		logx.Warn("RAPIDAPI_KEY is not set, tiktok-downloader will fail upstream")
	}
	resolver := convertinfra.NewRapidAPIResolver(convertinfra.RapidAPIConfig{
		Key:     rapidAPIKey,
		Host:    os.Getenv("RAPIDAPI_HOST"),
		Timeout: envDuration("RESOLVER_TIMEOUT", 0),
	})

	var cache conversion.MetadataCache
	if c.Redis != nil {
		cache = convertinfra.NewRedisMetadataCache(c.Redis, 0)
	}

	// Hosted writer (optional). Without a key, ai-writer uses the local
	// template writer.
	var draftWriter conversion.Writer
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		draftWriter = writer.New(apiKey)
	} else {
		logx.Warn("OPENAI_API_KEY is not set, ai-writer uses the template fallback")
	}

	c.ConvertService = convertsrv.NewService(c.Codec, c.Rasterizer, resolver, cache, draftWriter)
	c.ConvertHandlers = convertapi.NewConvertHandlers(c.ConvertService)
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		logx.Warnf("invalid %s=%q, using default", key, raw)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logx.Warnf("invalid %s=%q, using default", key, raw)
		return fallback
	}
	return d
}
