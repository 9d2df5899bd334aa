package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/packagewjx/feature-clusterer/pkg/server"
	"github.com/pkg/errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultApiHostBaseUrl = "http://feature-clusterer.feature-clusterer"

const defaultTimeout = time.Minute

// NewApiClient 创建访问聚类服务的客户端，baseUrl为空时使用默认地址
func NewApiClient(baseUrl string) server.API {
	if baseUrl == "" {
		baseUrl = DefaultApiHostBaseUrl
	}
	return &apiClient{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

var _ server.API = &apiClient{}

type apiClient struct {
	baseUrl string
	client  *http.Client
}

func (a *apiClient) Cluster(request *server.ClusterRequest) (*server.ClusterResponse, error) {
	marshal, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "序列化请求异常")
	}

	response, err := a.client.Post(a.baseUrl+"/cluster", "application/json", bytes.NewReader(marshal))
	if err != nil {
		return nil, errors.Wrap(err, "请求时出现异常")
	}
	defer func() {
		_ = response.Body.Close()
	}()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(err, "读取时出现异常")
	}
	switch response.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, errors.Wrap(server.ErrInvalidRequest, strings.TrimSpace(string(body)))
	default:
		return nil, fmt.Errorf("聚类请求失败，状态码%d，响应为%s", response.StatusCode, strings.TrimSpace(string(body)))
	}

	dest := &server.ClusterResponse{}
	err = json.Unmarshal(body, dest)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("解析json异常，json为\n%s", string(body)))
	}

	return dest, nil
}

func (a *apiClient) QueryRun(runId string) (*server.ClusterRun, error) {
	response, err := a.client.Get(a.runUrl(runId))
	if err != nil {
		return nil, errors.Wrap(err, "请求时出现异常")
	}
	defer func() {
		_ = response.Body.Close()
	}()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(err, "读取时出现异常")
	}
	switch response.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, server.ErrRunNotFound
	default:
		return nil, fmt.Errorf("查询聚类记录失败，状态码%d，响应为%s", response.StatusCode, strings.TrimSpace(string(body)))
	}

	dest := &server.ClusterRun{}
	err = json.Unmarshal(body, dest)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("解析json异常，json为\n%s", string(body)))
	}

	return dest, nil
}

func (a *apiClient) RemoveRun(runId string) error {
	request, err := http.NewRequest(http.MethodDelete, a.runUrl(runId), nil)
	if err != nil {
		return errors.Wrap(err, "创建请求异常")
	}
	response, err := a.client.Do(request)
	if err != nil {
		return errors.Wrap(err, "请求时出现异常")
	}
	defer func() {
		_ = response.Body.Close()
	}()

	switch response.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return server.ErrRunNotFound
	default:
		body, _ := io.ReadAll(response.Body)
		return fmt.Errorf("删除聚类记录失败，状态码%d，响应为%s", response.StatusCode, strings.TrimSpace(string(body)))
	}
}

func (a *apiClient) runUrl(runId string) string {
	return a.baseUrl + "/runs/" + url.PathEscape(runId)
}
