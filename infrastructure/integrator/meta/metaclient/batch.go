package metaclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	metadomain "github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/domain"
	"github.com/adlens/marketing-insights-api/internal/domain"
)

// BatchRequest é uma operação lógica embutida em uma chamada em lote.
type BatchRequest struct {
	Method      string `json:"method"`
	RelativeURL string `json:"relative_url"`
}

// BatchResult é o resultado de um item do lote, na mesma posição da
// requisição correspondente. Code diferente de 200 indica falha apenas
// daquele item; os irmãos permanecem válidos.
type BatchResult struct {
	Code  int
	Body  string
	Error *metadomain.ErrorResponse
}

// OK informa se o item foi atendido com sucesso.
func (r BatchResult) OK() bool {
	return r.Code == http.StatusOK
}

// rawBatchItem é o formato de cada item na resposta do endpoint de
// batch. Itens não processados chegam como null.
type rawBatchItem struct {
	Code int    `json:"code"`
	Body string `json:"body"`
}

// ExecuteBatch serializa as requisições em uma única chamada de rede e
// demultiplexa os resultados por item. Falha de transporte derruba o
// lote inteiro com ErrBatchRequestFailed.
func (c *MetaClient) ExecuteBatch(ctx context.Context, cred domain.Credential, requests []BatchRequest) ([]BatchResult, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(requests)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("access_token", cred.AccessToken)
	form.Set("batch", string(payload))
	form.Set("include_headers", "false")

	var results []BatchResult
	execErr := c.retrier.Execute(ctx, func(ctx context.Context) error {
		if err := c.limiter.Acquire(ctx); err != nil {
			return err
		}

		body, err := c.doRequest(ctx, http.MethodPost, c.cfg.Meta.URL, form)
		if err != nil {
			return err
		}

		var raw []*rawBatchItem
		if err := json.Unmarshal(body, &raw); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}

		if len(raw) != len(requests) {
			return fmt.Errorf("%w: lote com %d itens retornou %d resultados", ErrMalformedResponse, len(requests), len(raw))
		}

		results = demuxBatch(raw)
		return nil
	})
	if execErr != nil {
		if errors.Is(execErr, ErrTransport) {
			return nil, errors.Join(ErrBatchRequestFailed, execErr)
		}
		return nil, execErr
	}

	return results, nil
}

// demuxBatch converte os itens crus em resultados, parseando o corpo de
// erro dos itens que falharam.
func demuxBatch(raw []*rawBatchItem) []BatchResult {
	results := make([]BatchResult, len(raw))

	for i, item := range raw {
		if item == nil {
			// Item não processado pelo vendor (timeout interno do lote)
			results[i] = BatchResult{Code: 0}
			continue
		}

		result := BatchResult{
			Code: item.Code,
			Body: item.Body,
		}

		if item.Code != http.StatusOK {
			var errResp metadomain.ErrorResponse
			if err := json.Unmarshal([]byte(item.Body), &errResp); err == nil && errResp.Error.Message != "" {
				result.Error = &errResp
			}

			logrus.WithFields(logrus.Fields{
				"index": i,
				"code":  item.Code,
			}).Warn("metaclient: item do lote falhou")
		}

		results[i] = result
	}

	return results
}

// Chunk divide as requisições em lotes de no máximo size itens. Lotes
// pequenos limitam a latência por chamada e reduzem falhas em cascata
// sob throttling.
func Chunk(requests []BatchRequest, size int) [][]BatchRequest {
	if size <= 0 {
		size = 10
	}

	var chunks [][]BatchRequest
	for start := 0; start < len(requests); start += size {
		end := start + size
		if end > len(requests) {
			end = len(requests)
		}
		chunks = append(chunks, requests[start:end])
	}

	return chunks
}
