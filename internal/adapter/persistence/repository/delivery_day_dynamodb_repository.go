package repository

import (
	"context"
	"sort"

	"cistilnica/internal/domain/entities"
	"cistilnica/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultDeliveryDaysTableName = "delivery_days"

type deliveryDayRecord struct {
	Date       string   `dynamodbav:"date"`
	Kilometers float64  `dynamodbav:"kilometers"`
	Minutes    int64    `dynamodbav:"minutes"`
	OrderIDs   []string `dynamodbav:"order_ids"`
}

// DeliveryDayDynamoRepository persists per-date delivery summaries.
//
// Table requirements:
//   - PK: date (string, YYYY-MM-DD)
//
// Save is an unconditional put: the calendar date is the identity and staff
// overwrite the whole row when they re-enter it.
type DeliveryDayDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IDeliveryDayRepository = (*DeliveryDayDynamoRepository)(nil)

func NewDeliveryDayDynamoRepository(ddb *dynamodb.Client) *DeliveryDayDynamoRepository {
	return &DeliveryDayDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("DELIVERY_DAYS_TABLE", defaultDeliveryDaysTableName),
	}
}

func (r *DeliveryDayDynamoRepository) Save(ctx context.Context, d entities.DeliveryDay) (entities.DeliveryDay, error) {
	av, err := attributevalue.MarshalMap(deliveryDayRecord{
		Date:       d.Date,
		Kilometers: d.Kilometers,
		Minutes:    d.Minutes,
		OrderIDs:   d.OrderIDs,
	})
	if err != nil {
		return entities.DeliveryDay{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.DeliveryDay{}, err
	}
	return d, nil
}

func (r *DeliveryDayDynamoRepository) GetByDate(ctx context.Context, date string) (entities.DeliveryDay, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"date": &types.AttributeValueMemberS{Value: date},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.DeliveryDay{}, err
	}
	if len(out.Item) == 0 {
		return entities.DeliveryDay{}, nil
	}

	var rec deliveryDayRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return entities.DeliveryDay{}, err
	}
	return entities.DeliveryDay(rec), nil
}

func (r *DeliveryDayDynamoRepository) List(ctx context.Context) ([]entities.DeliveryDay, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}

	var days []entities.DeliveryDay
	for {
		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var rec deliveryDayRecord
			if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
				return nil, err
			}
			days = append(days, entities.DeliveryDay(rec))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	// ISO dates sort lexicographically; newest first.
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })
	return days, nil
}
