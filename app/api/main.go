package main

import (
	"crypto/ecdsa"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/base/database/mongoclient"
	"github.com/nifty-xyz/goapi/base/log"
	bValidator "github.com/nifty-xyz/goapi/base/validator"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/platform"
	mmiddleware "github.com/nifty-xyz/goapi/middleware"
	"github.com/nifty-xyz/goapi/service/chain"
	"github.com/nifty-xyz/goapi/service/chain/contract"
	"github.com/nifty-xyz/goapi/service/query"
	"github.com/nifty-xyz/goapi/service/treasury"
	activity_delivery "github.com/nifty-xyz/goapi/stores/activity/delivery/http"
	activity_repository "github.com/nifty-xyz/goapi/stores/activity/repository"
	activity_usecase "github.com/nifty-xyz/goapi/stores/activity/usecase"
	auction_delivery "github.com/nifty-xyz/goapi/stores/auction/delivery/http"
	auction_repository "github.com/nifty-xyz/goapi/stores/auction/repository"
	auction_usecase "github.com/nifty-xyz/goapi/stores/auction/usecase"
	auth_delivery "github.com/nifty-xyz/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/nifty-xyz/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/nifty-xyz/goapi/stores/auth/usecase"
	custody_usecase "github.com/nifty-xyz/goapi/stores/custody/usecase"
	hc_delivery "github.com/nifty-xyz/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/nifty-xyz/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/nifty-xyz/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/nifty-xyz/goapi/stores/listing/delivery/http"
	listing_repository "github.com/nifty-xyz/goapi/stores/listing/repository"
	listing_usecase "github.com/nifty-xyz/goapi/stores/listing/usecase"
	platform_delivery "github.com/nifty-xyz/goapi/stores/platform/delivery/http"
	platform_usecase "github.com/nifty-xyz/goapi/stores/platform/usecase"
	royalty_usecase "github.com/nifty-xyz/goapi/stores/royalty/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "config file path")
	pflag.Parse()
	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	mmiddleware.SetupCache()

	// init chain service
	context.Info("init chain")
	networks := viper.Sub("networks")
	rpcs := make(map[int32]string)
	for k := range networks.AllSettings() {
		chainId := networks.GetInt32(k + ".chainId")
		rpcs[chainId] = networks.GetString(k + ".rpcUrl")
	}
	// read-only mode when no escrow key is configured
	var signingKey *ecdsa.PrivateKey
	if hexKey := viper.GetString("chain.escrowKey"); hexKey != "" {
		var err error
		signingKey, err = crypto.HexToECDSA(hexKey)
		if err != nil {
			panic(err)
		}
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:    rpcs,
		SigningKey: signingKey,
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}
	assetRegistry := contract.NewRegistry(viper.GetInt32("chain.chainId"), chainService)

	escrowAccount := domain.Address(viper.GetString("market.escrowAccount"))
	platformUC := platform_usecase.New(&platform_usecase.PlatformCfg{
		Admin: domain.Address(viper.GetString("admin.owner")),
		Initial: platform.Settings{
			FeeRate:               domain.BasisPoints(viper.GetInt64("market.feeRate")),
			FeeRecipient:          domain.Address(viper.GetString("market.feeRecipient")),
			ListingFee:            domain.MustParseAmount(viper.GetString("market.listingFee")),
			BidIncrementRate:      domain.BasisPoints(viper.GetInt64("market.bidIncrementRate")),
			AuctionDuration:       viper.GetDuration("market.auctionDuration"),
			RespectDynamicRoyalty: viper.GetBool("market.respectDynamicRoyalty"),
			EscrowAccount:         escrowAccount,
		},
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient)
	activityRepo := activity_repository.NewActivityRepo(q)
	listingRepo := listing_repository.NewArena()
	auctionRepo := auction_repository.NewArena()
	pendingReturnsRepo := auction_repository.NewPendingReturns()

	hc := hc_usecase.New(hcRepo)
	activityUC := activity_usecase.New(&activity_usecase.ActivityUseCaseCfg{
		ActivityRepo: activityRepo,
	})
	custodyAdapter := custody_usecase.New(assetRegistry, escrowAccount)
	royaltyResolver := royalty_usecase.NewResolver(&royalty_usecase.ResolverCfg{
		Registry: assetRegistry,
		Platform: platformUC,
	})
	treasuryService := treasury.New()
	listingUC := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo: listingRepo,
		Custody:     custodyAdapter,
		Royalty:     royaltyResolver,
		Platform:    platformUC,
		Treasury:    treasuryService,
		ActivityUC:  activityUC,
	})
	auctionUC := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		AuctionRepo:        auctionRepo,
		PendingReturnsRepo: pendingReturnsRepo,
		Custody:            custodyAdapter,
		Royalty:            royaltyResolver,
		Platform:           platformUC,
		Treasury:           treasuryService,
		ActivityUC:         activityUC,
	})
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetDuration("auth.tokenTtl"))

	adminAddresses := viper.GetStringSlice("admin.addresses")
	authMiddleware := auth_middleware.New(auth, adminAddresses)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, viper.GetString("auth.signatureMsg"))
	listing_delivery.New(e, authMiddleware.Auth(), listingUC)
	auction_delivery.New(e, authMiddleware.Auth(), auctionUC)
	platform_delivery.New(e, authMiddleware.Auth(), authMiddleware.IsAdmin(), platformUC)
	activity_delivery.New(e, activityUC, mmiddleware.CacheHttp(10*time.Second))

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": c.Get("address").(domain.Address),
		})
	}, authMiddleware.Auth())

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
