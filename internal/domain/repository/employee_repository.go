package repository

import "github.com/jhoicas/storeroom-api/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee.
// Sin Delete, igual que SupplierRepository.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	GetByName(name string) (*entity.Employee, error)
	Update(employee *entity.Employee) error
	List() ([]*entity.Employee, error)
}
