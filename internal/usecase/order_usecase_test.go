package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

var _ repo.OrderRepository = (*OrderRepoMock)(nil)

type OrderLineRepoMock struct{ mock.Mock }

func (m *OrderLineRepoMock) CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error {
	args := m.Called(ctx, orderID, lines)
	return args.Error(0)
}

func (m *OrderLineRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderLineRepoMock) DeleteByOrderID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderLineRepoMock) ListAllDetails(ctx context.Context) ([]repo.OrderDetailRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.OrderDetailRow)
	return rows, args.Error(1)
}

func (m *OrderLineRepoMock) ListDetailsByOrderID(ctx context.Context, orderID int64) ([]repo.OrderLineRow, error) {
	args := m.Called(ctx, orderID)
	rows, _ := args.Get(0).([]repo.OrderLineRow)
	return rows, args.Error(1)
}

var _ repo.OrderLineRepository = (*OrderLineRepoMock)(nil)

// トランザクション内のrepo一式。テストではモックをそのまま返す。
type TxReposStub struct {
	orders *OrderRepoMock
	lines  *OrderLineRepoMock
	carts  *CartEntryRepoMock
}

func (s *TxReposStub) Orders() repo.OrderRepository          { return s.orders }
func (s *TxReposStub) OrderLines() repo.OrderLineRepository  { return s.lines }
func (s *TxReposStub) CartEntries() repo.CartEntryRepository { return s.carts }

// fnのerrorをそのまま返す（GORMのTransactionと同じ見え方）
type TxManagerStub struct {
	repos *TxReposStub
}

func (m *TxManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

var _ repo.TransactionManager = (*TxManagerStub)(nil)

// =====================
// helper
// =====================

type orderMocks struct {
	userRepo  *CartUserRepoMock
	orderRepo *OrderRepoMock
	lineRepo  *OrderLineRepoMock
	cartRepo  *CartEntryRepoMock
}

func newOrderUsecase() (*usecase.OrderUsecase, orderMocks) {
	m := orderMocks{
		userRepo:  new(CartUserRepoMock),
		orderRepo: new(OrderRepoMock),
		lineRepo:  new(OrderLineRepoMock),
		cartRepo:  new(CartEntryRepoMock),
	}

	tx := &TxManagerStub{repos: &TxReposStub{
		orders: m.orderRepo,
		lines:  m.lineRepo,
		carts:  m.cartRepo,
	}}

	return usecase.NewOrderUsecase(tx, m.userRepo, m.orderRepo, m.lineRepo), m
}

// =====================
// PlaceOrder
// =====================

// 10.00の商品5個 → 合計50.00、明細は現在価格のスナップショット、カートは空になる
func TestOrderUsecase_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	uc, m := newOrderUsecase()

	m.userRepo.On("FindByName", mock.Anything, "alice").Return(model.User{ID: 1, Name: "alice"}, nil)
	m.cartRepo.On("ListWithProductByUserID", mock.Anything, int64(1)).Return([]repo.CartEntryWithProduct{
		{EntryID: 10, ProductID: 2, ProductName: "book", Quantity: 5, UnitPrice: 10.00},
	}, nil)
	m.orderRepo.On("Create", mock.Anything, model.Order{
		UserID:     1,
		Date:       "2025-01-15",
		TotalPrice: 50.00,
	}).Return(int64(100), nil)
	m.lineRepo.On("CreateBulk", mock.Anything, int64(100), []model.OrderLine{
		{ProductID: 2, Quantity: 5, UnitPrice: 10.00},
	}).Return(nil)
	m.cartRepo.On("DeleteByUserID", mock.Anything, int64(1)).Return(nil)

	out, err := uc.PlaceOrder(ctx, "alice", "2025-01-15")
	assert.NoError(t, err)
	assert.Equal(t, int64(100), out.ID)
	assert.Equal(t, 50.00, out.TotalPrice)
	if assert.Len(t, out.Lines, 1) {
		assert.Equal(t, "book", out.Lines[0].Name)
		assert.Equal(t, 10.00, out.Lines[0].UnitPrice)
	}

	m.orderRepo.AssertExpectations(t)
	m.lineRepo.AssertExpectations(t)
	m.cartRepo.AssertExpectations(t)
}

// 複数商品の合計は sum(price × quantity)
func TestOrderUsecase_PlaceOrder_MultipleLines(t *testing.T) {
	ctx := context.Background()
	uc, m := newOrderUsecase()

	m.userRepo.On("FindByName", mock.Anything, "alice").Return(model.User{ID: 1}, nil)
	m.cartRepo.On("ListWithProductByUserID", mock.Anything, int64(1)).Return([]repo.CartEntryWithProduct{
		{EntryID: 10, ProductID: 2, ProductName: "book", Quantity: 2, UnitPrice: 12.50},
		{EntryID: 11, ProductID: 3, ProductName: "pen", Quantity: 3, UnitPrice: 1.50},
	}, nil)
	m.orderRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.TotalPrice == 29.50
	})).Return(int64(100), nil)
	m.lineRepo.On("CreateBulk", mock.Anything, int64(100), mock.Anything).Return(nil)
	m.cartRepo.On("DeleteByUserID", mock.Anything, int64(1)).Return(nil)

	out, err := uc.PlaceOrder(ctx, "alice", "2025-01-15")
	assert.NoError(t, err)
	assert.Equal(t, 29.50, out.TotalPrice)
	assert.Len(t, out.Lines, 2)
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	uc, m := newOrderUsecase()

	m.userRepo.On("FindByName", mock.Anything, "alice").Return(model.User{ID: 1}, nil)
	m.cartRepo.On("ListWithProductByUserID", mock.Anything, int64(1)).Return([]repo.CartEntryWithProduct{}, nil)

	_, err := uc.PlaceOrder(context.Background(), "alice", "2025-01-15")
	assertHTTPError(t, err, http.StatusBadRequest, "cart empty")

	// 注文は作られない
	m.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_UserNotFound(t *testing.T) {
	uc, m := newOrderUsecase()

	m.userRepo.On("FindByName", mock.Anything, "nobody").Return(model.User{}, repo.ErrNotFound)

	_, err := uc.PlaceOrder(context.Background(), "nobody", "2025-01-15")
	assertHTTPError(t, err, http.StatusNotFound, "user not found")
}

func TestOrderUsecase_PlaceOrder_MissingDate(t *testing.T) {
	uc, _ := newOrderUsecase()

	_, err := uc.PlaceOrder(context.Background(), "alice", "")
	assertHTTPError(t, err, http.StatusBadRequest, "date is required")
}

// 明細作成に失敗したらerrorが返る（GORM側がロールバックする）
func TestOrderUsecase_PlaceOrder_LineCreateFails(t *testing.T) {
	uc, m := newOrderUsecase()

	m.userRepo.On("FindByName", mock.Anything, "alice").Return(model.User{ID: 1}, nil)
	m.cartRepo.On("ListWithProductByUserID", mock.Anything, int64(1)).Return([]repo.CartEntryWithProduct{
		{EntryID: 10, ProductID: 2, ProductName: "book", Quantity: 1, UnitPrice: 10.00},
	}, nil)
	m.orderRepo.On("Create", mock.Anything, mock.Anything).Return(int64(100), nil)
	m.lineRepo.On("CreateBulk", mock.Anything, int64(100), mock.Anything).
		Return(assert.AnError)

	_, err := uc.PlaceOrder(context.Background(), "alice", "2025-01-15")
	assertHTTPError(t, err, http.StatusInternalServerError, "db error")

	// カートは消されない
	m.cartRepo.AssertNotCalled(t, "DeleteByUserID", mock.Anything, mock.Anything)
}

// =====================
// Details
// =====================

func TestOrderUsecase_ListAllDetails_MapsRows(t *testing.T) {
	uc, m := newOrderUsecase()

	m.lineRepo.On("ListAllDetails", mock.Anything).Return([]repo.OrderDetailRow{
		{OrderID: 100, Date: "2025-01-15", TotalPrice: 50.00, UserID: 1, UserName: "alice", ProductName: "book", Quantity: 5, UnitPrice: 10.00},
	}, nil)

	rows, err := uc.ListAllDetails(context.Background())
	assert.NoError(t, err)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, int64(100), rows[0].OrderID)
		assert.Equal(t, "alice", rows[0].UserName)
		assert.Equal(t, 50.00, rows[0].TotalPrice)
	}
}

func TestOrderUsecase_GetDetails_OrderNotFound(t *testing.T) {
	uc, m := newOrderUsecase()

	m.orderRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetDetails(context.Background(), 99)
	assertHTTPError(t, err, http.StatusNotFound, "order not found")
}

// =====================
// DeleteOrder
// =====================

func TestOrderUsecase_DeleteOrder_Success(t *testing.T) {
	uc, m := newOrderUsecase()

	m.lineRepo.On("DeleteByOrderID", mock.Anything, int64(100)).Return(nil)
	m.orderRepo.On("Delete", mock.Anything, int64(100)).Return(nil)

	err := uc.DeleteOrder(context.Background(), 100)
	assert.NoError(t, err)
	m.lineRepo.AssertExpectations(t)
	m.orderRepo.AssertExpectations(t)
}

func TestOrderUsecase_DeleteOrder_NotFound(t *testing.T) {
	uc, m := newOrderUsecase()

	m.lineRepo.On("DeleteByOrderID", mock.Anything, int64(99)).Return(nil)
	m.orderRepo.On("Delete", mock.Anything, int64(99)).Return(repo.ErrNotFound)

	err := uc.DeleteOrder(context.Background(), 99)
	assertHTTPError(t, err, http.StatusNotFound, "order not found")
}

func TestOrderUsecase_DeleteOrder_InvalidID(t *testing.T) {
	uc, _ := newOrderUsecase()

	err := uc.DeleteOrder(context.Background(), 0)
	assertHTTPError(t, err, http.StatusBadRequest, "invalid id")
}
