package router

import (
	"context"

	"resume-screen-go/internal/api/handler"
	"resume-screen-go/internal/tracing"
	"resume-screen-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
	"go.opentelemetry.io/otel/trace"
)

// RegisterRoutes 注册 API 路由
// apiKey非空时在/api/v1分组上启用keyauth校验
func RegisterRoutes(h *server.Hertz, analysisHandler *handler.AnalysisHandler, apiKey string) {
	// 健康检查不走鉴权
	h.GET("/api/v1/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	api := h.Group("/api/v1")

	if apiKey != "" {
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:Authorization", "Bearer"),
			keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
				return key == apiKey, nil
			}),
		))
	}

	// 纯文本分析入口：上传层已完成文本抽取时使用
	api.POST("/analyze", func(c context.Context, ctx *app.RequestContext) {
		var req types.AnalyzeRequest
		if err := ctx.BindAndValidate(&req); err != nil {
			tracing.RecordHTTPError(trace.SpanFromContext(c), err, consts.StatusBadRequest)
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "无法解析请求体"})
			return
		}

		resp, err := analysisHandler.HandleAnalyze(c, &req)
		if err != nil {
			// 引擎级失败仍是合法的业务响应：只含error字段
			ctx.JSON(consts.StatusOK, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// PDF上传分析入口
	api.POST("/resume/upload", func(c context.Context, ctx *app.RequestContext) {
		// 获取上传的文件
		fileHeader, err := ctx.FormFile("resume")
		if err != nil {
			tracing.RecordHTTPError(trace.SpanFromContext(c), err, consts.StatusBadRequest)
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		// 获取目标岗位与可选的JD文本
		jobRole := ctx.PostForm("job_role")
		jobDescription := ctx.PostForm("job_description")

		// 打开文件
		file, err := fileHeader.Open()
		if err != nil {
			tracing.RecordHTTPError(trace.SpanFromContext(c), err, consts.StatusInternalServerError)
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := analysisHandler.HandleUploadAnalyze(c, file, fileHeader.Filename, jobRole, jobDescription)
		if err != nil {
			ctx.JSON(consts.StatusOK, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// JD偏见审计：返回偏见报告与中性措辞建议
	api.POST("/bias/scan", func(c context.Context, ctx *app.RequestContext) {
		var req types.BiasScanRequest
		if err := ctx.BindAndValidate(&req); err != nil {
			tracing.RecordHTTPError(trace.SpanFromContext(c), err, consts.StatusBadRequest)
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "无法解析请求体"})
			return
		}
		ctx.JSON(consts.StatusOK, analysisHandler.HandleBiasScan(c, req.JobDescriptionText))
	})

	// 偏见检测自评：对标注样本集跑混淆矩阵
	api.GET("/bias/evaluation", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, analysisHandler.HandleBiasEvaluation(c))
	})

	// 岗位列表
	api.GET("/jobs", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"jobs": analysisHandler.HandleListJobRoles()})
	})
}
