package service

import (
	"context"
	"fmt"
	"learnpath_backend/internal/config"
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/util"
	"learnpath_backend/pkg/monitoring"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"
)

// ProbeResult 一次链接探测的结果
type ProbeResult struct {
	Accessible bool
	Available  bool
	StatusCode int
	Error      string
}

// LinkProber 可达性探测能力，注入后方便在测试中替换
type LinkProber interface {
	Probe(ctx context.Context, rawURL string) ProbeResult
}

// OptimisticProber 不发网络请求，凡是格式合法的链接一律视为可达
// 真实探测由 HTTPProber 提供，通过配置开关切换
type OptimisticProber struct{}

func (OptimisticProber) Probe(_ context.Context, _ string) ProbeResult {
	return ProbeResult{Accessible: true, Available: true, StatusCode: http.StatusOK}
}

// HTTPProber 发送带超时的 HEAD 请求做存在性探测，非 2xx/超时视为不可达
type HTTPProber struct {
	client *http.Client
}

func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{client: &http.Client{Timeout: timeout}}
}

func (p *HTTPProber) Probe(ctx context.Context, rawURL string) ProbeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return ProbeResult{Error: err.Error()}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return ProbeResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	return ProbeResult{
		Accessible: ok,
		Available:  ok,
		StatusCode: resp.StatusCode,
	}
}

// ResourceVerifier 校验资源链接并评估质量
// 任何单个资源的失败都被就地吸收，绝不向调用方抛错
type ResourceVerifier struct {
	assessor *QualityAssessor
	prober   LinkProber
}

func NewResourceVerifier(cfg config.VerifierConfig, assessor *QualityAssessor) *ResourceVerifier {
	var prober LinkProber = OptimisticProber{}
	if cfg.ProbeEnabled {
		prober = NewHTTPProber(cfg.ProbeTimeout)
	}
	return &ResourceVerifier{assessor: assessor, prober: prober}
}

// NewResourceVerifierWithProber 测试与脚本场景下直接注入探测器
func NewResourceVerifierWithProber(assessor *QualityAssessor, prober LinkProber) *ResourceVerifier {
	return &ResourceVerifier{assessor: assessor, prober: prober}
}

// URLCheckResult CheckURL 的结构化结果
type URLCheckResult struct {
	Accessible bool
	StatusCode int
	Error      string
}

// CheckURL 校验 URL 格式并探测可达性
// 非 http/https 协议一律拒绝；解析失败时带回解析错误
func (v *ResourceVerifier) CheckURL(ctx context.Context, rawURL string) URLCheckResult {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return URLCheckResult{Accessible: false, Error: err.Error()}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return URLCheckResult{Accessible: false, Error: util.ErrInvalidProtocol.Error()}
	}

	probe := v.prober.Probe(ctx, rawURL)
	return URLCheckResult{
		Accessible: probe.Accessible,
		StatusCode: probe.StatusCode,
		Error:      probe.Error,
	}
}

// CheckContentAvailability 内容是否仍然存在（页面未被下架）
func (v *ResourceVerifier) CheckContentAvailability(ctx context.Context, resource *model.Resource) bool {
	return v.prober.Probe(ctx, resource.URL).Available
}

// VerifyResource 对单个资源做链接校验 + 质量评估 + 内容可用性检查
// verified 当且仅当链接可达且内容可用
func (v *ResourceVerifier) VerifyResource(ctx context.Context, resource model.Resource, sourceType string) model.Resource {
	// 三项检查彼此独立
	urlCheck := v.CheckURL(ctx, resource.URL)
	assessment := v.assessor.AssessQuality(&resource, sourceType)
	available := v.CheckContentAvailability(ctx, &resource)

	resource.Verified = urlCheck.Accessible && available
	resource.VerificationStatus = &model.VerificationStatus{
		URLAccessible:    urlCheck.Accessible,
		ContentAvailable: available,
		LastChecked:      time.Now(),
		StatusCode:       urlCheck.StatusCode,
		Error:            urlCheck.Error,
	}

	// 质量分始终等于加权评估结果，与校验是否通过无关
	resource.QualityScore = assessment.Overall
	resource.QualityAssessment = &assessment

	return resource
}

// VerifyResources 对所有分类的所有资源并发校验
// 输出顺序与输入逐下标对齐；统计跨分类累计；输入不被修改
func (v *ResourceVerifier) VerifyResources(ctx context.Context, research model.ResearchResults) model.VerifiedResults {
	out := model.VerifiedResults{
		Resources: make(model.ResearchResults, len(research)),
	}

	// 分类名排序保证 warning 顺序稳定
	categories := make([]string, 0, len(research))
	for category := range research {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		resources := research[category]
		verified := make([]model.Resource, len(resources))

		var wg sync.WaitGroup
		for i, res := range resources {
			wg.Add(1)
			go func(i int, res model.Resource) {
				defer wg.Done()
				verified[i] = v.verifySafe(ctx, res, category)
			}(i, res)
		}
		wg.Wait()

		failed := 0
		for _, res := range verified {
			if res.Verified {
				out.VerifiedCount++
				monitoring.ResourceVerifications.WithLabelValues(category, "verified").Inc()
			} else {
				out.FailedCount++
				failed++
				monitoring.ResourceVerifications.WithLabelValues(category, "failed").Inc()
			}
		}

		if failed > 0 {
			out.Warnings = append(out.Warnings, fmt.Sprintf("%d %s resources could not be verified", failed, category))
		}

		out.Resources[category] = verified
	}

	return out
}

// verifySafe 吸收 VerifyResource 内部的 panic，保证批量校验不中断
func (v *ResourceVerifier) verifySafe(ctx context.Context, resource model.Resource, sourceType string) (out model.Resource) {
	defer func() {
		if r := recover(); r != nil {
			out = resource
			out.Verified = false
			out.QualityScore = 0
			out.VerificationStatus = &model.VerificationStatus{
				LastChecked: time.Now(),
				Error:       fmt.Sprintf("%v", r),
			}
		}
	}()
	return v.VerifyResource(ctx, resource, sourceType)
}
