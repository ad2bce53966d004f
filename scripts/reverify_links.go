// 手动触发保存路径的链接复查脚本
//
// 对已持久化的知识路径逐条重新探测资源链接（真实 HEAD 请求），
// 更新资源的校验状态并写回数据库。适合在导入大量历史路径后执行。
//
// 用法: go run scripts/reverify_links.go

package main

import (
	"context"
	"encoding/json"
	"learnpath_backend/internal/config"
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/service"
	"learnpath_backend/pkg/database"
	"learnpath_backend/pkg/logger"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	assessor := service.NewQualityAssessor()
	verifier := service.NewResourceVerifierWithProber(assessor, service.NewHTTPProber(10*time.Second))

	var records []model.KnowledgePathRecord
	if err := db.Find(&records).Error; err != nil {
		log.Fatalf("读取路径记录失败: %v", err)
	}

	logger.Log.Info("开始复查资源链接", zap.Int("paths", len(records)))

	ctx := context.Background()
	for _, record := range records {
		var path model.KnowledgePath
		if err := json.Unmarshal([]byte(record.PathJSON), &path); err != nil {
			logger.Log.Warn("路径快照解析失败", zap.String("id", record.ID), zap.Error(err))
			continue
		}

		changed := 0
		for si := range path.Stages {
			stage := &path.Stages[si]
			for ri := range stage.Resources {
				verified := verifier.VerifyResource(ctx, stage.Resources[ri], model.CategoryVideos)
				if verified.Verified != stage.Resources[ri].Verified {
					changed++
				}
				stage.Resources[ri] = verified
			}
		}

		if changed == 0 {
			continue
		}

		updated, err := json.Marshal(path)
		if err != nil {
			continue
		}
		if err := db.Model(&model.KnowledgePathRecord{}).
			Where("id = ?", record.ID).
			Update("path_json", string(updated)).Error; err != nil {
			logger.Log.Warn("路径快照更新失败", zap.String("id", record.ID), zap.Error(err))
			continue
		}

		logger.Log.Info("路径复查完成", zap.String("id", record.ID), zap.Int("changed", changed))

		// 避免对同一站点的探测过于密集
		time.Sleep(time.Second)
	}

	logger.Log.Info("资源链接复查结束")
}
