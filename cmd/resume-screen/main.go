package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-screen-go/internal/api/handler"
	"resume-screen-go/internal/api/router"
	"resume-screen-go/internal/config"
	"resume-screen-go/internal/engine"
	"resume-screen-go/internal/lexicon"
	"resume-screen-go/internal/parser"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/spf13/pflag"

	appCoreLogger "resume-screen-go/internal/logger"

	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
)

var (
	version     = "1.0.0"         //nolint:gochecknoglobals
	serviceName = "resume-screen" //nolint:gochecknoglobals
)

// @title Resume Screen API
// @version 1.0
// @description Resume analysis engine: job match scoring, bias audit and anonymization.
// @BasePath /api/v1
func main() {
	var configPath string
	var showVersion bool
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.BoolVar(&showVersion, "version", false, "Print version and exit")
	pflag.Parse()

	if showVersion {
		os.Stdout.WriteString(serviceName + " " + version + "\n")
		return
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}

	initLogger(cfg)
	glog.Info("配置加载成功")

	// 启动时加载一次词库快照，之后只通过原子替换更新
	set, err := lexicon.LoadSet(context.Background(), lexicon.FileOverrides{
		TaxonomyFile:           cfg.Data.TaxonomyFile,
		BiasLexiconFile:        cfg.Data.BiasLexiconFile,
		DemographicLexiconFile: cfg.Data.DemographicLexiconFile,
		EvaluationSamplesFile:  cfg.Data.EvaluationSamplesFile,
	})
	if err != nil {
		glog.Fatalf("加载词库数据失败: %v", err)
	}
	store := lexicon.NewStore(set)
	appCoreLogger.Info().
		Str("version", set.Version).
		Int("roles", len(set.Taxonomy.Roles())).
		Msg("词库数据加载成功")

	// SIGHUP触发词库重载；整套快照原子替换，失败保留旧数据
	go watchReload(cfg, store)

	analyzer := engine.NewAnalyzer(
		&appCoreLogger.Logger,
		nil,
		[]engine.SettingOpt{
			engine.WithMaxInputChars(cfg.Engine.MaxInputChars),
			engine.WithAnalyzeTimeout(cfg.AnalyzeTimeoutDuration()),
		},
	)
	pdfExtractor := parser.NewPDFExtractor(appCoreLogger.With("pdf_extractor"))

	analysisHandler := handler.NewAnalysisHandler(store, analyzer, pdfExtractor)
	glog.Info("分析处理器初始化成功")

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, analysisHandler, cfg.Server.APIKey)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)

	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

// initLogger 初始化zerolog并把Hertz的hlog路由到同一个输出
func initLogger(cfg *config.Config) {
	appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	hertzCompatibleLogger := hertzadapter.From(appCoreLogger.Logger)
	glog.SetLogger(hertzCompatibleLogger)
}

// watchReload 监听SIGHUP，整套词库原子替换
func watchReload(cfg *config.Config, store *lexicon.Store) {
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	for range reload {
		newSet, err := lexicon.LoadSet(context.Background(), lexicon.FileOverrides{
			TaxonomyFile:           cfg.Data.TaxonomyFile,
			BiasLexiconFile:        cfg.Data.BiasLexiconFile,
			DemographicLexiconFile: cfg.Data.DemographicLexiconFile,
			EvaluationSamplesFile:  cfg.Data.EvaluationSamplesFile,
		})
		if err != nil {
			// 重载失败只告警，进行中与后续请求继续使用旧快照
			appCoreLogger.Error().Err(err).Msg("词库重载失败，保留现有数据")
			continue
		}
		store.Swap(newSet)
		appCoreLogger.Info().
			Str("version", newSet.Version).
			Msg("词库重载完成")
	}
}
