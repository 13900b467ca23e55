package accounts

import (
	"context"
	"net/http"

	"github.com/brave-intl/restpipe/libs/middleware"
	"github.com/brave-intl/restpipe/libs/pipeline"
	"github.com/go-chi/chi"
)

// StatementMediaType is the media type of streamed statements
const StatementMediaType = "text/csv; charset=utf-8"

// Router for account endpoints
func Router(service *Service, p *pipeline.Pipeline, instrumentHandler middleware.InstrumentHandlerDef) chi.Router {
	r := chi.NewRouter()

	r.Method(http.MethodPost, "/", instrumentHandler("CreateAccount",
		pipeline.Handle(p, "AccountsController.Create", CreateAccountHandler(service), pipeline.RequireBody())))
	r.Method(http.MethodGet, "/{accountId}", instrumentHandler("GetAccount",
		pipeline.Handle(p, "AccountsController.Get", GetAccountHandler(service))))
	r.Method(http.MethodPatch, "/{accountId}", instrumentHandler("UpdateAccount",
		pipeline.Handle(p, "AccountsController.Update", UpdateAccountHandler(service), pipeline.RequireBody())))
	r.Method(http.MethodPost, "/{accountId}/withdrawals", instrumentHandler("Withdraw",
		pipeline.Handle(p, "AccountsController.Withdraw", WithdrawHandler(service), pipeline.RequireBody())))
	r.Method(http.MethodGet, "/{accountId}/statement", instrumentHandler("GetStatement",
		pipeline.Handle(p, "AccountsController.Statement", StatementHandler(service))))

	return r
}

// CreateAccountHandler - handler to open an account
func CreateAccountHandler(service *Service) pipeline.Endpoint[CreateAccountRequest] {
	return func(ctx context.Context, req *CreateAccountRequest) (pipeline.Reply, error) {
		account, err := service.CreateAccount(ctx, req.Owner, req.Nickname, req.Pin, req.InitialDeposit)
		if err != nil {
			return pipeline.Reply{}, err
		}
		return pipeline.Created(newAccountResponse(account)), nil
	}
}

// GetAccountHandler - handler to read an account
func GetAccountHandler(service *Service) pipeline.Endpoint[GetAccountRequest] {
	return func(ctx context.Context, req *GetAccountRequest) (pipeline.Reply, error) {
		account, err := service.GetAccount(ctx, req.Identifier.AccountID)
		if err != nil {
			return pipeline.Reply{}, err
		}
		return pipeline.OK(newAccountResponse(account)), nil
	}
}

// UpdateAccountHandler - handler to change the nickname or pin of an account
func UpdateAccountHandler(service *Service) pipeline.Endpoint[UpdateAccountRequest] {
	return func(ctx context.Context, req *UpdateAccountRequest) (pipeline.Reply, error) {
		account, err := service.UpdateAccount(ctx, req.Identifier.AccountID, req.Nickname, req.Pin)
		if err != nil {
			return pipeline.Reply{}, err
		}
		resp := newAccountResponse(account)
		resp.SetCorrelationID(req.CorrelationID())
		return pipeline.OK(resp), nil
	}
}

// WithdrawHandler - handler to debit an account
func WithdrawHandler(service *Service) pipeline.Endpoint[WithdrawRequest] {
	return func(ctx context.Context, req *WithdrawRequest) (pipeline.Reply, error) {
		account, entry, err := service.Withdraw(ctx, req.Identifier.AccountID, req.Pin, req.Amount, req.Reference)
		if err != nil {
			return pipeline.Reply{}, err
		}
		return pipeline.Created(&WithdrawalResponse{
			AccountID: account.ID,
			EntryID:   entry.ID,
			Amount:    entry.Amount,
			Balance:   account.Balance,
			Reference: entry.Reference,
		}), nil
	}
}

// StatementHandler - handler streaming the entries of an account as csv
func StatementHandler(service *Service) pipeline.Endpoint[StatementRequest] {
	return func(ctx context.Context, req *StatementRequest) (pipeline.Reply, error) {
		statement, err := service.Statement(ctx, req.Identifier.AccountID)
		if err != nil {
			return pipeline.Reply{}, err
		}
		return pipeline.Stream(StatementMediaType, statement), nil
	}
}
