package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cistilnica/internal/domain/entities"
	"cistilnica/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultOrdersTableName = "orders"

type orderItemRecord struct {
	ArticleID  string  `dynamodbav:"article_id"`
	Name       string  `dynamodbav:"name"`
	Unit       string  `dynamodbav:"unit"`
	Price      float64 `dynamodbav:"price"`
	VATPercent float64 `dynamodbav:"vat_percent"`
	FinalPrice float64 `dynamodbav:"final_price"`
	Quantity   float64 `dynamodbav:"quantity"`
	LineTotal  float64 `dynamodbav:"line_total"`
}

type statusChangeRecord struct {
	Status    string `dynamodbav:"status"`
	Timestamp string `dynamodbav:"timestamp"`
}

type orderRecord struct {
	ID            string               `dynamodbav:"id"`
	OrderNumber   string               `dynamodbav:"order_number"`
	Name          string               `dynamodbav:"name"`
	Email         string               `dynamodbav:"email"`
	Phone         string               `dynamodbav:"phone"`
	Address       string               `dynamodbav:"address"`
	CustomerID    string               `dynamodbav:"customer_id"`
	Service       string               `dynamodbav:"service"`
	PickupMode    string               `dynamodbav:"pickup_mode"`
	PaymentMethod string               `dynamodbav:"payment_method"`
	CustomerType  string               `dynamodbav:"customer_type"`
	Status        string               `dynamodbav:"status"`
	StatusHistory []statusChangeRecord `dynamodbav:"status_history"`
	Items         []orderItemRecord    `dynamodbav:"items"`
	OrderNotes    string               `dynamodbav:"order_notes"`
	Version       int64                `dynamodbav:"version"`
	CreatedAt     string               `dynamodbav:"created_at"`
	UpdatedAt     string               `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Writes are full-document puts guarded by a version check, so a concurrent
// editor fails with interfaces.ErrVersionConflict instead of clobbering the
// other write. DynamoDB's single-item atomicity covers the whole aggregate
// (items and status history live inside the document).
type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderRecord(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Order{}, interfaces.ErrAlreadyExists
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var rec orderRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return entities.Order{}, err
	}
	return fromOrderRecord(rec), nil
}

func (r *OrderDynamoRepository) List(ctx context.Context, filter interfaces.OrderFilter) ([]entities.Order, error) {
	filterExpr, values, names := buildOrderFilter(filter)

	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}
	if filterExpr != "" {
		input.FilterExpression = aws.String(filterExpr)
		input.ExpressionAttributeValues = values
		input.ExpressionAttributeNames = names
	}

	var orders []entities.Order
	for {
		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var rec orderRecord
			if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
				return nil, err
			}
			orders = append(orders, fromOrderRecord(rec))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Update replaces the stored document if its version still matches o.Version
// and stores o with the version bumped. A mismatch maps to
// interfaces.ErrVersionConflict; a vanished document maps to a zero entity
// via a follow-up read.
func (r *OrderDynamoRepository) Update(ctx context.Context, o entities.Order) (entities.Order, error) {
	expected := o.Version
	o.Version = expected + 1

	av, err := attributevalue.MarshalMap(toOrderRecord(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expected)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			current, getErr := r.GetByID(ctx, o.ID)
			if getErr != nil {
				return entities.Order{}, getErr
			}
			if current.ID == "" {
				return entities.Order{}, nil
			}
			return entities.Order{}, interfaces.ErrVersionConflict
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	out, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, err
	}
	return len(out.Attributes) > 0, nil
}

func buildOrderFilter(filter interfaces.OrderFilter) (string, map[string]types.AttributeValue, map[string]string) {
	var parts []string
	values := map[string]types.AttributeValue{}
	names := map[string]string{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			key := fmt.Sprintf(":s%d", i)
			placeholders[i] = key
			values[key] = &types.AttributeValueMemberS{Value: string(s)}
		}
		parts = append(parts, fmt.Sprintf("#status IN (%s)", strings.Join(placeholders, ", ")))
		names["#status"] = "status"
	}
	if len(filter.ExcludeStatuses) > 0 {
		placeholders := make([]string, len(filter.ExcludeStatuses))
		for i, s := range filter.ExcludeStatuses {
			key := fmt.Sprintf(":x%d", i)
			placeholders[i] = key
			values[key] = &types.AttributeValueMemberS{Value: string(s)}
		}
		parts = append(parts, fmt.Sprintf("NOT #status IN (%s)", strings.Join(placeholders, ", ")))
		names["#status"] = "status"
	}
	if filter.PickupMode != "" {
		parts = append(parts, "#pickup_mode = :pickup_mode")
		values[":pickup_mode"] = &types.AttributeValueMemberS{Value: string(filter.PickupMode)}
		names["#pickup_mode"] = "pickup_mode"
	}

	return strings.Join(parts, " AND "), values, names
}

func toOrderRecord(o entities.Order) orderRecord {
	history := make([]statusChangeRecord, len(o.StatusHistory))
	for i, h := range o.StatusHistory {
		history[i] = statusChangeRecord{Status: string(h.Status), Timestamp: formatTime(h.Timestamp)}
	}
	items := make([]orderItemRecord, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemRecord{
			ArticleID:  it.ArticleID,
			Name:       it.Name,
			Unit:       it.Unit,
			Price:      it.Price,
			VATPercent: it.VATPercent,
			FinalPrice: it.FinalPrice,
			Quantity:   it.Quantity,
			LineTotal:  it.LineTotal,
		}
	}
	return orderRecord{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Name:          o.Name,
		Email:         o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		CustomerID:    o.CustomerID,
		Service:       o.Service,
		PickupMode:    string(o.PickupMode),
		PaymentMethod: string(o.PaymentMethod),
		CustomerType:  string(o.CustomerType),
		Status:        string(o.Status),
		StatusHistory: history,
		Items:         items,
		OrderNotes:    o.OrderNotes,
		Version:       o.Version,
		CreatedAt:     formatTime(o.CreatedAt),
		UpdatedAt:     formatTime(o.UpdatedAt),
	}
}

func fromOrderRecord(rec orderRecord) entities.Order {
	history := make([]entities.StatusChange, len(rec.StatusHistory))
	for i, h := range rec.StatusHistory {
		history[i] = entities.StatusChange{Status: entities.OrderStatus(h.Status), Timestamp: parseTime(h.Timestamp)}
	}
	items := make([]entities.OrderItem, len(rec.Items))
	for i, it := range rec.Items {
		items[i] = entities.OrderItem{
			ArticleID:  it.ArticleID,
			Name:       it.Name,
			Unit:       it.Unit,
			Price:      it.Price,
			VATPercent: it.VATPercent,
			FinalPrice: it.FinalPrice,
			Quantity:   it.Quantity,
			LineTotal:  it.LineTotal,
		}
	}
	return entities.Order{
		ID:            rec.ID,
		OrderNumber:   rec.OrderNumber,
		Name:          rec.Name,
		Email:         rec.Email,
		Phone:         rec.Phone,
		Address:       rec.Address,
		CustomerID:    rec.CustomerID,
		Service:       rec.Service,
		PickupMode:    entities.PickupMode(rec.PickupMode),
		PaymentMethod: entities.PaymentMethod(rec.PaymentMethod),
		CustomerType:  entities.CustomerType(rec.CustomerType),
		Status:        entities.OrderStatus(rec.Status),
		StatusHistory: history,
		Items:         items,
		OrderNotes:    rec.OrderNotes,
		Version:       rec.Version,
		CreatedAt:     parseTime(rec.CreatedAt),
		UpdatedAt:     parseTime(rec.UpdatedAt),
	}
}
