package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Provider 目录快照提供方。文档生成前取一次快照，聚合期间不再访问网络。
type Provider interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

// listResponse 目录服务列表响应
type listResponse struct {
	Items []Item `json:"items"`
}

// Client CRM 目录服务 HTTP 客户端（只读）
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient 创建目录客户端
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// Fetch 拉取完整目录（产品 + 服务）为内存快照
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	products, err := c.list(ctx, "/catalog/api/v1/products")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	services, err := c.list(ctx, "/catalog/api/v1/services")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}

	c.logger.Debug("Catalog snapshot fetched",
		zap.Int("products", len(products)),
		zap.Int("services", len(services)),
	)
	return NewSnapshot(products, services), nil
}

func (c *Client) list(ctx context.Context, path string) ([]Item, error) {
	var response listResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&response).
		Get(path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode())
	}
	return response.Items, nil
}
