package repository

import (
	"context"
	"errors"
	"sort"

	"cistilnica/internal/domain/entities"
	"cistilnica/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCustomersTableName = "customers"

type customerRecord struct {
	ID            string `dynamodbav:"id"`
	Name          string `dynamodbav:"name"`
	Email         string `dynamodbav:"email"`
	Phone         string `dynamodbav:"phone"`
	Address       string `dynamodbav:"address"`
	Notes         string `dynamodbav:"notes"`
	Type          string `dynamodbav:"type"`
	PaymentMethod string `dynamodbav:"payment_method"`
	PickupMode    string `dynamodbav:"pickup_mode"`
	UsageCount    int64  `dynamodbav:"usage_count"`
	CreatedAt     string `dynamodbav:"created_at"`
	UpdatedAt     string `dynamodbav:"updated_at"`
}

// CustomerDynamoRepository persists customer profiles in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type CustomerDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICustomerRepository = (*CustomerDynamoRepository)(nil)

func NewCustomerDynamoRepository(ddb *dynamodb.Client) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CUSTOMERS_TABLE", defaultCustomersTableName),
	}
}

func (r *CustomerDynamoRepository) Create(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	av, err := attributevalue.MarshalMap(toCustomerRecord(c))
	if err != nil {
		return entities.Customer{}, err
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
			return entities.Customer{}, interfaces.ErrAlreadyExists
		}
		return entities.Customer{}, err
	}
	return c, nil
}

func (r *CustomerDynamoRepository) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Customer{}, err
	}
	if len(out.Item) == 0 {
		return entities.Customer{}, nil
	}

	var rec customerRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return entities.Customer{}, err
	}
	return fromCustomerRecord(rec), nil
}

func (r *CustomerDynamoRepository) List(ctx context.Context) ([]entities.Customer, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}

	var customers []entities.Customer
	for {
		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var rec customerRecord
			if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
				return nil, err
			}
			customers = append(customers, fromCustomerRecord(rec))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CreatedAt.Before(customers[j].CreatedAt)
	})
	return customers, nil
}

// Update rewrites the mutable profile fields. usage_count is left alone on
// purpose: it is owned by IncrementUsage, and a full-document put would
// clobber a bump landing between the caller's read and this write.
func (r *CustomerDynamoRepository) Update(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	expr, names, values, err := customerUpdateExpression(c)
	if err != nil {
		return entities.Customer{}, err
	}
	names["#id"] = "id"

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: c.ID},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Customer{}, nil
		}
		return entities.Customer{}, err
	}

	var rec customerRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return entities.Customer{}, err
	}
	return fromCustomerRecord(rec), nil
}

func customerUpdateExpression(c entities.Customer) (string, map[string]string, map[string]types.AttributeValue, error) {
	names := map[string]string{
		"#name":           "name",
		"#email":          "email",
		"#phone":          "phone",
		"#address":        "address",
		"#notes":          "notes",
		"#type":           "type",
		"#payment_method": "payment_method",
		"#pickup_mode":    "pickup_mode",
		"#updated_at":     "updated_at",
	}
	values, err := attributevalue.MarshalMap(map[string]any{
		":name":           c.Name,
		":email":          c.Email,
		":phone":          c.Phone,
		":address":        c.Address,
		":notes":          c.Notes,
		":type":           string(c.Type),
		":payment_method": string(c.PaymentMethod),
		":pickup_mode":    string(c.PickupMode),
		":updated_at":     formatTime(c.UpdatedAt),
	})
	if err != nil {
		return "", nil, nil, err
	}
	expr := "SET #name = :name, #email = :email, #phone = :phone, " +
		"#address = :address, #notes = :notes, #type = :type, " +
		"#payment_method = :payment_method, #pickup_mode = :pickup_mode, " +
		"#updated_at = :updated_at"
	return expr, names, values, nil
}

func (r *CustomerDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
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

// IncrementUsage bumps the usage counter atomically without touching any
// other attribute. A missing profile is skipped silently.
func (r *CustomerDynamoRepository) IncrementUsage(ctx context.Context, id string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("ADD #usage_count :one"),
		ExpressionAttributeNames: map[string]string{
			"#id":          "id",
			"#usage_count": "usage_count",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return nil
		}
		return err
	}
	return nil
}

func toCustomerRecord(c entities.Customer) customerRecord {
	return customerRecord{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		Notes:         c.Notes,
		Type:          string(c.Type),
		PaymentMethod: string(c.PaymentMethod),
		PickupMode:    string(c.PickupMode),
		UsageCount:    c.UsageCount,
		CreatedAt:     formatTime(c.CreatedAt),
		UpdatedAt:     formatTime(c.UpdatedAt),
	}
}

func fromCustomerRecord(rec customerRecord) entities.Customer {
	return entities.Customer{
		ID:            rec.ID,
		Name:          rec.Name,
		Email:         rec.Email,
		Phone:         rec.Phone,
		Address:       rec.Address,
		Notes:         rec.Notes,
		Type:          entities.CustomerType(rec.Type),
		PaymentMethod: entities.PaymentMethod(rec.PaymentMethod),
		PickupMode:    entities.PickupMode(rec.PickupMode),
		UsageCount:    rec.UsageCount,
		CreatedAt:     parseTime(rec.CreatedAt),
		UpdatedAt:     parseTime(rec.UpdatedAt),
	}
}
