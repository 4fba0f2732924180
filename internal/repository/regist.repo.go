package repository

import (
	catalogRepo "transfer-storefront/internal/repository/catalog"
	leadRepo "transfer-storefront/internal/repository/lead"
	stockRepo "transfer-storefront/internal/repository/stock"
	transferRepo "transfer-storefront/internal/repository/transfer"
	userRepo "transfer-storefront/internal/repository/user"
	wizardRepo "transfer-storefront/internal/repository/wizard"
)

// IRepository is a container for all repository interfaces
type IRepository struct {
	User     userRepo.IRepository
	Lead     leadRepo.IRepository
	Transfer transferRepo.IRepository
	Catalog  catalogRepo.IRepository
	Stock    stockRepo.IRepository
	Wizard   wizardRepo.IRepository
}
