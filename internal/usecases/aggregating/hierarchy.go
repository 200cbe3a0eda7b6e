package aggregating

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	metadomain "github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/domain"
	"github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/adlens/marketing-insights-api/internal/domain"
	"github.com/adlens/marketing-insights-api/pkg/cache"
)

const accountFields = "name,account_id,currency,timezone_name"

// FetchBusinessHierarchy resolve os Business Managers do usuário e suas
// contas de anúncio. Contas sem Business Manager são agrupadas no
// pseudo-gerenciador "Direct Accounts"; gerenciadores sem conta alguma
// não aparecem no resultado.
func (s *Service) FetchBusinessHierarchy(ctx context.Context, cred domain.Credential) ([]domain.BusinessManager, error) {
	key := cache.Key("hierarchy", cred.AccessToken)
	if data, ok := s.cache.Get(key); ok {
		if managers, ok := data.([]domain.BusinessManager); ok {
			return managers, nil
		}
	}

	gen := s.beginFetch(key)

	// Um único round trip resolve identidade, contas diretas e
	// Business Managers
	results, err := s.client.ExecuteBatch(ctx, cred, []metaclient.BatchRequest{
		{Method: http.MethodGet, RelativeURL: "me?fields=id,name"},
		{Method: http.MethodGet, RelativeURL: "me/adaccounts?fields=" + accountFields + "&limit=100"},
		{Method: http.MethodGet, RelativeURL: "me/businesses?fields=id,name,permitted_tasks&limit=100"},
	})
	if err != nil {
		return nil, newError(classify(err), "", "falha ao buscar a hierarquia de contas")
	}

	rateLimited := false
	noteFailure := func(r metaclient.BatchResult) {
		if r.Error != nil && r.Error.IsRateLimited() {
			rateLimited = true
		}
	}

	if results[0].OK() {
		var user metadomain.User
		if err := json.Unmarshal([]byte(results[0].Body), &user); err == nil {
			logrus.WithFields(logrus.Fields{
				"user_id":   user.ID,
				"user_name": user.Name,
			}).Debug("hierarchy: identidade resolvida")
		}
	}

	var direct []metadomain.AdAccount
	if results[1].OK() {
		var list metadomain.AdAccountList
		if err := json.Unmarshal([]byte(results[1].Body), &list); err == nil {
			direct = list.Data
		}
	} else {
		noteFailure(results[1])
	}

	var businesses []metadomain.Business
	if results[2].OK() {
		var list metadomain.BusinessList
		if err := json.Unmarshal([]byte(results[2].Body), &list); err == nil {
			businesses = list.Data
		}
	} else {
		noteFailure(results[2])
	}

	accountsByBusiness, err := s.fetchClientAccounts(ctx, cred, businesses, noteFailure)
	if err != nil {
		return nil, err
	}

	managers := make([]domain.BusinessManager, 0, len(businesses)+1)
	grouped := make(map[string]bool)

	for _, b := range businesses {
		accounts := accountsByBusiness[b.ID]
		if len(accounts) == 0 {
			// Business Manager sem contas não entra no resultado
			continue
		}

		bm := domain.BusinessManager{
			ID:             b.ID,
			Name:           b.Name,
			PermittedTasks: b.PermittedTasks,
		}

		for _, a := range accounts {
			account := toDomainAccount(a)
			account.BusinessID = b.ID
			account.BusinessName = b.Name
			grouped[account.AccountID] = true
			bm.AdAccounts = append(bm.AdAccounts, account)
		}

		managers = append(managers, bm)
	}

	var directAccounts []domain.AdAccount
	for _, a := range direct {
		account := toDomainAccount(a)
		if grouped[account.AccountID] {
			continue
		}
		directAccounts = append(directAccounts, account)
	}

	if len(directAccounts) > 0 {
		managers = append(managers, domain.BusinessManager{
			ID:         domain.DirectBusinessID,
			Name:       "Direct Accounts",
			AdAccounts: directAccounts,
		})
	}

	if len(managers) == 0 {
		if rateLimited {
			return nil, newError(ErrRateLimitExceeded, "", "vendor sinalizou throttling ao listar contas")
		}
		return nil, newError(ErrNoAccountsFound, "", "nenhuma conta de anúncio encontrada para a credencial")
	}

	logrus.WithFields(logrus.Fields{
		"businesses": len(managers),
	}).Info("hierarchy: hierarquia de contas resolvida")

	s.storeIfCurrent(key, gen, managers, s.cfg.Cache.AccountTTL)

	return managers, nil
}

// fetchClientAccounts busca as contas de cada Business Manager em lotes
// sequenciais. Falhas por item não derrubam os irmãos.
func (s *Service) fetchClientAccounts(
	ctx context.Context,
	cred domain.Credential,
	businesses []metadomain.Business,
	noteFailure func(metaclient.BatchResult),
) (map[string][]metadomain.AdAccount, error) {
	accountsByBusiness := make(map[string][]metadomain.AdAccount, len(businesses))
	if len(businesses) == 0 {
		return accountsByBusiness, nil
	}

	requests := make([]metaclient.BatchRequest, 0, len(businesses))
	bizIDs := make([]string, 0, len(businesses))
	for _, b := range businesses {
		requests = append(requests, metaclient.BatchRequest{
			Method:      http.MethodGet,
			RelativeURL: fmt.Sprintf("%s/client_ad_accounts?fields=%s&limit=100", b.ID, accountFields),
		})
		bizIDs = append(bizIDs, b.ID)
	}

	offset := 0
	for i, chunk := range metaclient.Chunk(requests, s.cfg.Batch.ChunkSize) {
		if i > 0 {
			// Pausa fixa entre chunks para não saturar o limitador
			if err := s.clock.Sleep(ctx, s.cfg.Batch.InterChunkDelay); err != nil {
				return nil, err
			}
		}

		results, err := s.client.ExecuteBatch(ctx, cred, chunk)
		if err != nil {
			classified := classify(err)
			if classified == ErrRateLimitExceeded {
				return nil, newError(classified, "", "throttling ao buscar contas dos Business Managers")
			}

			logrus.WithError(err).Warn("hierarchy: chunk de contas falhou, seguindo com os demais")
			offset += len(chunk)
			continue
		}

		for j, r := range results {
			bizID := bizIDs[offset+j]
			if !r.OK() {
				noteFailure(r)
				logrus.WithFields(logrus.Fields{
					"business_id": bizID,
					"code":        r.Code,
				}).Warn("hierarchy: falha ao listar contas do business")
				continue
			}

			var list metadomain.AdAccountList
			if err := json.Unmarshal([]byte(r.Body), &list); err != nil {
				continue
			}

			accountsByBusiness[bizID] = list.Data
		}

		offset += len(chunk)
	}

	return accountsByBusiness, nil
}

// toDomainAccount converte a conta do Graph API para o domínio,
// garantindo o ID numérico cru.
func toDomainAccount(a metadomain.AdAccount) domain.AdAccount {
	accountID := a.AccountID
	if accountID == "" {
		accountID = metadomain.StripAccountPrefix(a.ID)
	}

	return domain.AdAccount{
		AccountID:    accountID,
		Name:         a.Name,
		Currency:     a.Currency,
		TimezoneName: a.TimezoneName,
	}
}
