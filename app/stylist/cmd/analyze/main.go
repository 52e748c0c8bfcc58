package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/golang/geo/s2"
	"github.com/joho/godotenv"

	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/config"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/engine"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/logger"
)

var (
	flagConfig   = flag.String("config", "app/stylist/configs/stylist.yaml", "engine config path")
	flagPhoto    = flag.String("photo", "", "local photo to analyze")
	flagURL      = flag.String("url", "", "photo url to analyze")
	flagQuestion = flag.String("question", "", "text question for the stylist")
	flagLat      = flag.Float64("lat", math.NaN(), "latitude for nearby stores")
	flagLon      = flag.Float64("lon", math.NaN(), "longitude for nearby stores")
	flagLang     = flag.String("lang", "", "reply language: ru or en")
	flagTimeout  = flag.Duration("timeout", 2*time.Minute, "overall timeout")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()

	// 1. 加载配置
	cfg, err := config.LoadConfig(*flagConfig)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置错误: %v", err)
	}

	// 2. 初始化日志
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}

	// 3. 初始化引擎
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		log.Fatalf("无法初始化引擎: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *flagTimeout)
	defer cancel()

	result, err := run(ctx, eng)
	if err != nil {
		logger.Log.Errorf("执行失败: %v", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		log.Fatalf("输出结果失败: %v", err)
	}
}

func run(ctx context.Context, eng *engine.Engine) (interface{}, error) {
	switch {
	case *flagPhoto != "":
		data, err := os.ReadFile(*flagPhoto)
		if err != nil {
			return nil, err
		}
		return eng.AnalyzeOutfit(ctx, engine.Photo{Data: data}, *flagLang)
	case *flagURL != "":
		return eng.AnalyzeOutfit(ctx, engine.Photo{URL: *flagURL}, *flagLang)
	case *flagQuestion != "":
		return eng.AskStylist(ctx, *flagQuestion, *flagLang)
	case !math.IsNaN(*flagLat) && !math.IsNaN(*flagLon):
		center := s2.LatLngFromDegrees(*flagLat, *flagLon)
		if !center.IsValid() {
			return nil, fmt.Errorf("invalid coordinates: %v,%v", *flagLat, *flagLon)
		}
		stores, err := eng.NearbyStores(ctx, center, *flagLang)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"stores": stores}, nil
	}
	flag.Usage()
	return nil, fmt.Errorf("one of -photo, -url, -question or -lat/-lon is required")
}
