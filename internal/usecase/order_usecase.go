package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	userRepo  repo.UserRepository
	orderRepo repo.OrderRepository
	lineRepo  repo.OrderLineRepository
}

// DI
func NewOrderUsecase(
	tx repo.TransactionManager,
	userRepo repo.UserRepository,
	orderRepo repo.OrderRepository,
	lineRepo repo.OrderLineRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		lineRepo:  lineRepo,
	}
}

type OrderLineOutput struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type OrderOutput struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	Date       string            `json:"date"`
	TotalPrice float64           `json:"total_price"`
	Lines      []OrderLineOutput `json:"lines"`
}

// 注文確定。カートを現在価格でスナップショットして注文＋明細を作り、カートを空にする。
// 注文作成・明細作成・カート削除は1トランザクション：途中で失敗したら
// 注文も明細も残らず、カートもそのまま。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userName string, date string) (OrderOutput, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "user name is required")
	}
	if strings.TrimSpace(date) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "date is required")
	}

	user, err := u.userRepo.FindByName(ctx, userName)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// カート＋現在の商品価格
		rows, err := r.CartEntries().ListWithProductByUserID(ctx, user.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(rows) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		// 現在価格をスナップショット
		lines := make([]model.OrderLine, 0, len(rows))
		outLines := make([]OrderLineOutput, 0, len(rows))
		var total float64 = 0

		for _, row := range rows {
			lines = append(lines, model.OrderLine{
				ProductID: row.ProductID,
				Quantity:  row.Quantity,
				UnitPrice: row.UnitPrice,
			})
			outLines = append(outLines, OrderLineOutput{
				ProductID: row.ProductID,
				Name:      row.ProductName,
				Quantity:  row.Quantity,
				UnitPrice: row.UnitPrice,
			})

			total += row.UnitPrice * float64(row.Quantity)
		}

		// 注文作成
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:     user.ID,
			Date:       date,
			TotalPrice: total,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 明細一括作成
		if err := r.OrderLines().CreateBulk(ctx, orderID, lines); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// カートを空にする（再注文防止）
		if err := r.CartEntries().DeleteByUserID(ctx, user.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderOutput{
			ID:         orderID,
			UserID:     user.ID,
			Date:       date,
			TotalPrice: total,
			Lines:      outLines,
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 全注文一覧の1行（注文＋ユーザー＋商品のフラットな行）
type OrderDetailOutput struct {
	OrderID     int64   `json:"order_id"`
	Date        string  `json:"date"`
	TotalPrice  float64 `json:"total_price"`
	UserID      int64   `json:"user_id"`
	UserName    string  `json:"user_name"`
	UserEmail   string  `json:"user_email"`
	UserPhone   string  `json:"user_phone"`
	UserAddress string  `json:"user_address"`
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type OrderLineDetailOutput struct {
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// 全注文の明細一覧
func (u *OrderUsecase) ListAllDetails(ctx context.Context) ([]OrderDetailOutput, error) {
	rows, err := u.lineRepo.ListAllDetails(ctx)
	if err != nil {
		return []OrderDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderDetailOutput, 0, len(rows))
	for _, row := range rows {
		outs = append(outs, OrderDetailOutput{
			OrderID:     row.OrderID,
			Date:        row.Date,
			TotalPrice:  row.TotalPrice,
			UserID:      row.UserID,
			UserName:    row.UserName,
			UserEmail:   row.UserEmail,
			UserPhone:   row.UserPhone,
			UserAddress: row.UserAddress,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
		})
	}
	return outs, nil
}

func (u *OrderUsecase) GetDetails(ctx context.Context, orderID int64) ([]OrderLineDetailOutput, error) {
	if orderID <= 0 {
		return []OrderLineDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if _, err := u.orderRepo.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return []OrderLineDetailOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
		}
		return []OrderLineDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rows, err := u.lineRepo.ListDetailsByOrderID(ctx, orderID)
	if err != nil {
		return []OrderLineDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderLineDetailOutput, 0, len(rows))
	for _, row := range rows {
		outs = append(outs, OrderLineDetailOutput{
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
		})
	}
	return outs, nil
}

// 注文削除。明細→注文の順で消す。両方で1トランザクション。
func (u *OrderUsecase) DeleteOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.OrderLines().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		err := r.Orders().Delete(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
