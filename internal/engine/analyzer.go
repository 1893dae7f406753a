package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"resume-screen-go/internal/constants"
	"resume-screen-go/internal/lexicon"
	"resume-screen-go/internal/tracing"
	"resume-screen-go/internal/types"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// 定义tracer
var tracer = otel.Tracer("engine")

// Analyzer 结果装配器：协调技能提取、匹配评分、偏见扫描与脱敏，
// 组装单次请求的完整分析结果。请求之间完全无共享可变状态。
type Analyzer struct {
	components Components
	settings   Settings
	logger     zerolog.Logger
}

// NewAnalyzer 创建分析器实例
func NewAnalyzer(logger *zerolog.Logger, compOpts []ComponentOpt, setOpts []SettingOpt) *Analyzer {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	components := defaultComponents(*logger)
	for _, opt := range compOpts {
		opt(&components)
	}

	settings := Settings{
		MaxInputChars:  constants.DefaultMaxInputChars,
		AnalyzeTimeout: constants.DefaultAnalyzeTimeout,
	}
	for _, opt := range setOpts {
		opt(&settings)
	}

	return &Analyzer{
		components: components,
		settings:   settings,
		logger:     *logger,
	}
}

// Analyze 对一份简历与目标岗位执行完整分析
// 全有或全无：任何一个阶段失败则整个请求失败，不返回部分结果
// 偏见扫描与脱敏作用于彼此独立的输入，与技能提取并行执行；
// 评分依赖提取结果，在提取之后串行
func (a *Analyzer) Analyze(ctx context.Context, set *lexicon.Set, req *types.AnalyzeRequest) (result *types.AnalysisResult, err error) {
	requestID := newRequestID()

	ctx, cancel := context.WithTimeout(ctx, a.settings.AnalyzeTimeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "engine.Analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("request.id", requestID),
		attribute.String("request.job_role", req.JobRole),
		attribute.String("lexicon.version", set.Version),
		attribute.Int("request.resume_chars", len(req.ResumeText)),
	)

	// 词库数据损坏等意外问题只让当前请求失败，不击穿进程
	defer func() {
		if r := recover(); r != nil {
			err = NewInternalError(requestID, "analyze", fmt.Sprintf("panic: %v", r))
			tracing.RecordError(span, err, tracing.ErrorTypeInternal)
			a.logger.Error().
				Str("request_id", requestID).
				Interface("panic", r).
				Msg("分析过程发生panic，已转为请求级错误")
			result = nil
		}
	}()

	// 入口校验，任何阶段开始前完成
	if err := a.validate(requestID, set, req); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	role, _ := set.Taxonomy.Role(req.JobRole)
	jdText := req.JobDescriptionText
	if strings.TrimSpace(jdText) == "" {
		// JD文本缺省时回退到岗位自带的描述
		jdText = role.Description
	}

	var (
		wg         sync.WaitGroup
		match      *types.MatchResult
		bias       *types.BiasReport
		anonymized *types.AnonymizedDocument
		stageErrs  = make([]error, 3)
	)

	// 阶段goroutine内的panic同样只能失败当前请求
	// 超时/取消在阶段入口处检查，运行中的阶段由各组件在扫描循环内让出
	runStage := func(idx int, op string, fn func()) {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				stageErrs[idx] = NewInternalError(requestID, op, fmt.Sprintf("panic: %v", r))
			}
		}()
		if ctxErr := ctx.Err(); ctxErr != nil {
			stageErrs[idx] = NewInternalError(requestID, op, "cancelled before start: "+ctxErr.Error())
			return
		}
		fn()
	}

	wg.Add(3)
	go runStage(0, "extract_score", func() {
		extracted := a.components.Extractor.Extract(ctx, req.ResumeText, set.Taxonomy)
		match = a.components.Scorer.Score(ctx, role, extracted)
	})
	go runStage(1, "bias_scan", func() {
		bias = a.components.BiasScanner.Scan(ctx, jdText, set.Bias)
	})
	go runStage(2, "anonymize", func() {
		anonymized = a.components.Anonymizer.Anonymize(ctx, req.ResumeText, set.Demographic)
	})
	wg.Wait()

	for _, stageErr := range stageErrs {
		if stageErr != nil {
			tracing.RecordError(span, stageErr, tracing.ErrorTypeInternal)
			return nil, stageErr
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		err := NewInternalError(requestID, "analyze", "analysis timed out: "+ctxErr.Error())
		tracing.RecordError(span, err, tracing.ErrorTypeTimeout)
		return nil, err
	}

	a.logger.Info().
		Str("request_id", requestID).
		Str("job_role", req.JobRole).
		Float64("match_percentage", match.Percentage).
		Str("tier", string(match.Tier)).
		Bool("bias_detected", bias.Detected).
		Int("redactions", len(anonymized.Spans)).
		Msg("简历分析完成")

	return &types.AnalysisResult{
		RequestID:  requestID,
		Match:      match,
		Bias:       bias,
		Anonymized: anonymized,
	}, nil
}

// ScanBias 对一段JD文本做独立偏见审计，报告附中性措辞改写建议
// 不涉及简历与岗位，入口校验与全有或全无规则不适用
func (a *Analyzer) ScanBias(ctx context.Context, set *lexicon.Set, jdText string) *types.BiasScanResponse {
	ctx, span := tracer.Start(ctx, "engine.ScanBiasStandalone")
	defer span.End()

	report := a.components.BiasScanner.Scan(ctx, jdText, set.Bias)
	return &types.BiasScanResponse{
		Detected:    report.Detected,
		Matches:     report.Matches,
		Suggestions: SuggestionsFor(report, set.Bias),
	}
}

// EvaluateBias 用快照自带的标注样本对当前偏见词库跑混淆矩阵自评
func (a *Analyzer) EvaluateBias(ctx context.Context, set *lexicon.Set) *types.BiasEvaluation {
	return a.components.Evaluator.Evaluate(ctx, set.Evaluation, set.Bias)
}

// validate 入口校验：超限 → 空文档 → 未知岗位，依次短路
func (a *Analyzer) validate(requestID string, set *lexicon.Set, req *types.AnalyzeRequest) error {
	if total := len(req.ResumeText) + len(req.JobDescriptionText); total > a.settings.MaxInputChars {
		return NewInputTooLargeError(requestID,
			fmt.Sprintf("%d chars exceeds limit of %d", total, a.settings.MaxInputChars))
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		return NewDocumentEmptyError(requestID, "resume text is empty")
	}
	if _, ok := set.Taxonomy.Role(req.JobRole); !ok {
		return NewUnknownJobRoleError(requestID, fmt.Sprintf("role %q", req.JobRole))
	}
	return nil
}

// newRequestID 生成请求级UUIDv7，失败时退化为Nil UUID字符串
func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil.String()
	}
	return id.String()
}
