package controllers

import (
	"context"
	"io"
	"net/http"
	"productapi/apperror"
	"productapi/database"
	"productapi/middleware"
	"productapi/models"
	"productapi/query"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidID       = apperror.BadRequest("Invalid ID")
	ErrInvalidBody     = apperror.BadRequest("Invalid request body")
	ErrProductNotFound = apperror.NotFound("Product not found")
)

type ProductController struct {
	store   database.ProductStore
	timeout time.Duration
	log     *logrus.Logger
}

func NewProductController(store database.ProductStore, timeout time.Duration, log *logrus.Logger) *ProductController {
	return &ProductController{
		store:   store,
		timeout: timeout,
		log:     log,
	}
}

// GetProducts handles GET /api/products?category=&minPrice=&sort=&fields=
func (pc *ProductController) GetProducts(c *gin.Context) {
	var params query.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		apperror.Respond(c, query.ErrInvalidMinPrice)
		return
	}

	q, err := query.Translate(params)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	ctx, cancel := pc.context(c)
	defer cancel()

	products, err := pc.store.Find(ctx, q)
	if err != nil {
		pc.fail(c, err, "failed to list products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/products/:id
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := pc.context(c)
	defer cancel()

	product, err := pc.store.FindByID(ctx, id)
	if err != nil {
		pc.fail(c, err, "failed to get product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /api/products. Only title, price and category
// are stored.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	doc, err := models.NewProduct(body)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	ctx, cancel := pc.context(c)
	defer cancel()

	id, err := pc.store.Insert(ctx, doc)
	if err != nil {
		pc.fail(c, err, "failed to create product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"acknowledged": true, "insertedId": id})
}

// ReplaceProduct handles PUT /api/products/:id
func (pc *ProductController) ReplaceProduct(c *gin.Context) {
	pc.update(c, models.ReplacementFields)
}

// PatchProduct handles PATCH /api/products/:id
func (pc *ProductController) PatchProduct(c *gin.Context) {
	pc.update(c, models.PatchFields)
}

func (pc *ProductController) update(c *gin.Context, fieldsFrom func(models.Product) (bson.M, error)) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	body, ok := bindBody(c)
	if !ok {
		return
	}

	fields, err := fieldsFrom(body)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	ctx, cancel := pc.context(c)
	defer cancel()

	if err := pc.store.Update(ctx, id, fields); err != nil {
		pc.fail(c, err, "failed to update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// DeleteProduct handles DELETE /api/products/:id
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := pc.context(c)
	defer cancel()

	if err := pc.store.Delete(ctx, id); err != nil {
		pc.fail(c, err, "failed to delete product")
		return
	}

	c.Status(http.StatusNoContent)
}

func (pc *ProductController) context(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), pc.timeout)
}

// fail reports a storage error. ErrNotFound becomes a 404; anything else is
// logged and hidden behind a 500.
func (pc *ProductController) fail(c *gin.Context, err error, msg string) {
	if errors.Is(err, database.ErrNotFound) {
		apperror.Respond(c, ErrProductNotFound)
		return
	}

	pc.log.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(c),
		"product_id": c.Param("id"),
	}).WithError(err).Error(msg)
	apperror.Respond(c, err)
}

func parseID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperror.Respond(c, ErrInvalidID)
		return primitive.NilObjectID, false
	}
	return id, true
}

// An empty body decodes as an empty document.
func bindBody(c *gin.Context) (models.Product, bool) {
	var body models.Product
	if err := c.ShouldBindJSON(&body); err != nil {
		if !errors.Is(err, io.EOF) {
			apperror.Respond(c, ErrInvalidBody)
			return nil, false
		}
		body = models.Product{}
	}
	if body == nil {
		apperror.Respond(c, ErrInvalidBody)
		return nil, false
	}
	return body, true
}
