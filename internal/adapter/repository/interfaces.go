package repository

import (
	"github.com/hugohenrick/sorveteria-pos/internal/domain/cashsession"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/employee"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/ingredient"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/payment"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/product"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/purchase"
	"github.com/hugohenrick/sorveteria-pos/internal/domain/sale"
)

var (
	_ ingredient.Repository  = (*PostgresIngredientRepository)(nil)
	_ product.Repository     = (*PostgresProductRepository)(nil)
	_ payment.Repository     = (*PostgresPaymentMethodRepository)(nil)
	_ sale.Repository        = (*PostgresSaleRepository)(nil)
	_ purchase.Repository    = (*PostgresPurchaseRepository)(nil)
	_ cashsession.Repository = (*PostgresCashSessionRepository)(nil)
	_ employee.Repository    = (*PostgresEmployeeRepository)(nil)
)
