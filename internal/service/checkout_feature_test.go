package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/shopspring/decimal"
)

var featureErrors = map[string]error{
	"no session":      ErrNoSession,
	"empty cart":      ErrEmptyCart,
	"proof required":  ErrProofRequired,
	"proof forbidden": ErrProofNotAllowed,
	"invalid address": ErrInvalidAddress,
	"invalid payment": ErrInvalidPayment,
}

type checkoutTestContext struct {
	deps      *testDeps
	svc       *CheckoutServiceImpl
	lines     []domain.CartLine
	session   *domain.CheckoutSession
	record    *domain.OrderRecord
	initErr   error
	submitErr error
}

func (c *checkoutTestContext) reset() {
	c.deps = newTestDeps()
	c.svc = c.deps.service(nil)
	c.lines = nil
	c.session = nil
	c.record = nil
	c.initErr = nil
	c.submitErr = nil
}

func (c *checkoutTestContext) aCartWithProduct(productID int, price int64, quantity int) error {
	c.lines = append(c.lines, domain.CartLine{
		ProductID: int64(productID),
		UnitPrice: decimal.NewFromInt(price),
		Quantity:  int32(quantity),
	})
	return nil
}

func (c *checkoutTestContext) anEmptyCart() error {
	c.lines = nil
	return nil
}

func (c *checkoutTestContext) theClientProfileIsComplete() error {
	c.deps.profile.User = completeProfile()
	return nil
}

func (c *checkoutTestContext) iInitializeTheCheckout() error {
	c.session, c.initErr = c.svc.Initialize(context.Background(), client, c.lines)
	return nil
}

func (c *checkoutTestContext) theCheckoutTotalIs(total int64) error {
	if c.initErr != nil {
		return fmt.Errorf("initialization failed: %v", c.initErr)
	}
	if !c.session.ComputedTotal.Equal(decimal.NewFromInt(total)) {
		return fmt.Errorf("expected total %d, got %s", total, c.session.ComputedTotal)
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutIsAtStep(step int) error {
	if c.session.Step != step {
		return fmt.Errorf("expected step %d, got %d", step, c.session.Step)
	}
	return nil
}

func (c *checkoutTestContext) iChooseCashOnDelivery() error {
	_, err := c.svc.SetPaymentMethod(context.Background(), client, domain.CashOnDelivery{})
	return err
}

func (c *checkoutTestContext) iChooseBankTransfer(adminType, userType string) error {
	method := domain.BankTransfer{
		Admin: &domain.AdminBank{AccountName: "Toko", BankType: domain.BankType(adminType), AccountNumber: "111"},
		User:  &domain.UserBank{ID: 1, UserID: 7, AccountName: "Budi", BankType: domain.BankType(userType), AccountNumber: "222"},
	}
	_, err := c.svc.SetPaymentMethod(context.Background(), client, method)
	return err
}

func (c *checkoutTestContext) iClearThePhoneNumber() error {
	addr := c.session.ShippingAddress
	addr.Phone = ""
	_, err := c.svc.SetAddress(context.Background(), client, addr)
	return err
}

func (c *checkoutTestContext) iSubmitWithoutProof() error {
	c.record, c.submitErr = c.svc.Submit(context.Background(), client, nil)
	return nil
}

func (c *checkoutTestContext) iSubmitWithProof(filename string) error {
	proof := &domain.ProofArtifact{Filename: filename, ContentType: "image/jpeg", Data: []byte("jpeg")}
	c.record, c.submitErr = c.svc.Submit(context.Background(), client, proof)
	return nil
}

func (c *checkoutTestContext) theSubmissionSucceeds() error {
	if c.submitErr != nil {
		return fmt.Errorf("expected success but got: %v", c.submitErr)
	}
	if c.record == nil {
		return errors.New("expected an order record")
	}
	return nil
}

func expectError(got error, name string) error {
	want, ok := featureErrors[name]
	if !ok {
		return fmt.Errorf("unknown error %q", name)
	}
	if !errors.Is(got, want) {
		return fmt.Errorf("expected %q, got %v", name, got)
	}
	return nil
}

func (c *checkoutTestContext) theSubmissionFailsWith(name string) error {
	return expectError(c.submitErr, name)
}

func (c *checkoutTestContext) initializationFailsWith(name string) error {
	return expectError(c.initErr, name)
}

func (c *checkoutTestContext) lastOrder() (*domain.OrderRequest, error) {
	requests := c.deps.orders.Requests
	if len(requests) == 0 {
		return nil, errors.New("no order request was sent")
	}
	return requests[len(requests)-1], nil
}

func (c *checkoutTestContext) theOrderRequestHas(field, value string) error {
	order, err := c.lastOrder()
	if err != nil {
		return err
	}
	var got string
	switch field {
	case "status_pembayaran":
		got = order.PaymentStatus.String()
	case "metode_pembayaran":
		got = order.PaymentMethod
	case "total_harga":
		got = order.TotalPrice
	default:
		return fmt.Errorf("unknown order field %q", field)
	}
	if got != value {
		return fmt.Errorf("expected %s %q, got %q", field, value, got)
	}
	return nil
}

func (c *checkoutTestContext) theOrderIsDueAfter(days int) error {
	order, err := c.lastOrder()
	if err != nil {
		return err
	}
	want := fixedNow.AddDate(0, 0, days).Format(domain.DateLayout)
	if order.DueDate != want {
		return fmt.Errorf("expected due date %s, got %s", want, order.DueDate)
	}
	return nil
}

func (c *checkoutTestContext) theSessionIsStillStored() error {
	_, err := c.svc.Session(context.Background(), client)
	return err
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a cart with product (\d+) priced (\d+) and quantity (\d+)$`, tc.aCartWithProduct)
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^the client profile has a complete shipping address$`, tc.theClientProfileIsComplete)

	// When steps
	ctx.Step(`^I initialize the checkout$`, tc.iInitializeTheCheckout)
	ctx.Step(`^I choose cash on delivery$`, tc.iChooseCashOnDelivery)
	ctx.Step(`^I choose bank transfer to "([^"]*)" from "([^"]*)"$`, tc.iChooseBankTransfer)
	ctx.Step(`^I clear the phone number$`, tc.iClearThePhoneNumber)
	ctx.Step(`^I submit the checkout without proof$`, tc.iSubmitWithoutProof)
	ctx.Step(`^I submit the checkout with proof "([^"]*)"$`, tc.iSubmitWithProof)

	// Then steps
	ctx.Step(`^the checkout total is (\d+)$`, tc.theCheckoutTotalIs)
	ctx.Step(`^the checkout is at step (\d+)$`, tc.theCheckoutIsAtStep)
	ctx.Step(`^the submission succeeds$`, tc.theSubmissionSucceeds)
	ctx.Step(`^the submission fails with "([^"]*)"$`, tc.theSubmissionFailsWith)
	ctx.Step(`^initialization fails with "([^"]*)"$`, tc.initializationFailsWith)
	ctx.Step(`^the order request has "([^"]*)" "([^"]*)"$`, tc.theOrderRequestHas)
	ctx.Step(`^the order request is due (\d+) days after submission$`, tc.theOrderIsDueAfter)
	ctx.Step(`^the checkout session is still stored$`, tc.theSessionIsStillStored)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../features/checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
