package provider

import (
	"github.com/sweethub-erp/internal/cache"
	"github.com/sweethub-erp/internal/config"
	"github.com/sweethub-erp/internal/logger"
	"github.com/sweethub-erp/internal/models"
	"github.com/sweethub-erp/internal/queue"
	"github.com/sweethub-erp/internal/repository"
	"github.com/sweethub-erp/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	StoreRepo         repository.StoreRepository
	StoreCategoryRepo repository.StoreCategoryRepository
	ItemRepo          repository.ItemRepository
	ItemCategoryRepo  repository.ItemCategoryRepository
	ItemPriceRepo     repository.ItemPriceRepository
	TaxRepo           repository.TaxRepository
	ComboRepo         repository.ComboRepository
	ProductRepo       repository.ProductRepository
	UserRepo          repository.UserRepository
	OrderRepo         repository.OrderRepository
	DispatchRepo      repository.DispatchRepository
	DispatchStepRepo  repository.DispatchStepRepository
	DispatchItemRepo  repository.DispatchItemRepository

	// Services
	StoreService         *service.StoreService
	StoreCategoryService *service.StoreCategoryService
	ItemService          *service.ItemService
	ItemCategoryService  *service.ItemCategoryService
	ItemPriceService     *service.ItemPriceService
	TaxService           *service.TaxService
	ComboService         *service.ComboService
	ProductService       *service.ProductService
	UserService          *service.UserService
	OrderService         *service.OrderService
	DispatchService      *service.DispatchService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.StoreRepo = repository.NewStoreRepository(db)
	c.StoreCategoryRepo = repository.NewStoreCategoryRepository(db)
	c.ItemRepo = repository.NewItemRepository(db)
	c.ItemCategoryRepo = repository.NewItemCategoryRepository(db)
	c.ItemPriceRepo = repository.NewItemPriceRepository(db)
	c.TaxRepo = repository.NewTaxRepository(db)
	c.ComboRepo = repository.NewComboRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.DispatchRepo = repository.NewDispatchRepository(db)
	c.DispatchStepRepo = repository.NewDispatchStepRepository(db)
	c.DispatchItemRepo = repository.NewDispatchItemRepository(db)
}

func (c *Container) initServices() {
	c.StoreService = service.NewStoreService(c.StoreRepo)
	c.StoreCategoryService = service.NewStoreCategoryService(c.StoreCategoryRepo)
	c.ItemService = service.NewItemService(c.ItemRepo)
	c.ItemCategoryService = service.NewItemCategoryService(c.ItemCategoryRepo)
	c.ItemPriceService = service.NewItemPriceService(c.ItemPriceRepo, c.ItemRepo, c.StoreRepo)
	c.TaxService = service.NewTaxService(c.TaxRepo)
	c.ComboService = service.NewComboService(c.ComboRepo, c.ItemRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.UserService = service.NewUserService(c.UserRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo)
	c.DispatchService = service.NewDispatchService(c.DispatchRepo, c.DispatchStepRepo, c.DispatchItemRepo, c.OrderRepo, c.QueueClient)
}
