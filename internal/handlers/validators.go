package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// enumValidator builds a validator.Func accepting only the given values.
func enumValidator(allowed ...string) validator.Func {
	set := make(map[string]bool, len(allowed))
	for _, v := range allowed {
		set[v] = true
	}
	return func(fl validator.FieldLevel) bool {
		return set[fl.Field().String()]
	}
}

// RegisterCustomValidators wires the domain enum tags into gin's binding
// engine. Must run once before any route binds a request body.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("balanceside", enumValidator(
		string(domain.SideDebit), string(domain.SideCredit)))

	_ = v.RegisterValidation("entrytype", enumValidator(
		string(domain.Debit), string(domain.Credit)))

	_ = v.RegisterValidation("vouchercategory", enumValidator(
		string(domain.CategoryPayment), string(domain.CategoryReceipt),
		string(domain.CategoryContra), string(domain.CategoryJournal),
		string(domain.CategorySalesVoucher), string(domain.CategoryPurchaseVch),
		string(domain.CategoryCreditNote), string(domain.CategoryDebitNote),
		string(domain.CategoryDeliveryNote), string(domain.CategoryReceiptNote),
		string(domain.CategoryStockJournal), string(domain.CategoryMemo)))

	_ = v.RegisterValidation("billtype", enumValidator(
		string(domain.BillReceivable), string(domain.BillPayable)))

	_ = v.RegisterValidation("supplytype", enumValidator(
		string(domain.SupplyGoods), string(domain.SupplyServices)))

	_ = v.RegisterValidation("gstmapping", enumValidator(
		string(domain.MappingOutputCGST), string(domain.MappingOutputSGST),
		string(domain.MappingOutputIGST), string(domain.MappingOutputCess),
		string(domain.MappingInputCGST), string(domain.MappingInputSGST),
		string(domain.MappingInputIGST), string(domain.MappingInputCess)))

	_ = v.RegisterValidation("companyrole", enumValidator(
		string(domain.RoleOwner), string(domain.RoleAdmin),
		string(domain.RoleMember), string(domain.RoleReadOnly)))
}
