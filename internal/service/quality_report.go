package service

import (
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/util"
)

// FilterQualityResources 按阈值过滤校验结果
// 保留条件：质量分达标 且 已通过校验，两者缺一不可；分类内顺序保持不变
func FilterQualityResources(verified *model.VerifiedResults, minQualityScore float64) model.ResearchResults {
	filtered := make(model.ResearchResults, len(verified.Resources))

	for category, resources := range verified.Resources {
		kept := make([]model.Resource, 0, len(resources))
		for _, res := range resources {
			if res.QualityScore >= minQualityScore && res.Verified {
				kept = append(kept, res)
			}
		}
		filtered[category] = kept
	}

	return filtered
}

// GenerateQualityReport 按分类统计并汇总质量报告
// averageQuality 只对通过校验的资源求均值，没有时为 0
func GenerateQualityReport(verified *model.VerifiedResults) model.QualityReport {
	report := model.QualityReport{
		Categories: make(map[string]model.CategoryStat, len(verified.Resources)),
	}

	totalQuality := 0.0
	for category, resources := range verified.Resources {
		stat := model.CategoryStat{Total: len(resources)}

		categoryQuality := 0.0
		for _, res := range resources {
			if res.Verified {
				stat.Verified++
				categoryQuality += res.QualityScore
			}
		}
		if stat.Verified > 0 {
			stat.AverageQuality = util.Round2(categoryQuality / float64(stat.Verified))
		}

		report.TotalResources += stat.Total
		report.VerifiedResources += stat.Verified
		totalQuality += categoryQuality
		report.Categories[category] = stat
	}

	if report.VerifiedResources > 0 {
		report.AverageQualityScore = util.Round2(totalQuality / float64(report.VerifiedResources))
	}

	report.Recommendations = buildRecommendations(&report)
	return report
}

// buildRecommendations 三条规则独立判定，可同时触发
func buildRecommendations(report *model.QualityReport) []string {
	var recs []string

	if report.AverageQualityScore < 0.6 {
		recs = append(recs, "Consider supplementing with additional high-quality resources")
	}

	if float64(report.VerifiedResources) < float64(report.TotalResources)*0.8 {
		recs = append(recs, "Some resources could not be verified - prioritize the verified sources")
	}

	if report.Categories[model.CategoryAcademic].Verified == 0 {
		recs = append(recs, "No verified academic resources found - consider enrolling in a structured course")
	}

	return recs
}
