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

const defaultArticlesTableName = "articles"

type articleRecord struct {
	ID              string  `dynamodbav:"id"`
	Name            string  `dynamodbav:"name"`
	Unit            string  `dynamodbav:"unit"`
	Price           float64 `dynamodbav:"price"`
	VATPercent      float64 `dynamodbav:"vat_percent"`
	FinalPrice      float64 `dynamodbav:"final_price"`
	UsageCount      int64   `dynamodbav:"usage_count"`
	OwnerCustomerID string  `dynamodbav:"owner_customer_id"`
	CreatedAt       string  `dynamodbav:"created_at"`
	UpdatedAt       string  `dynamodbav:"updated_at"`
}

// ArticleDynamoRepository persists catalog articles in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type ArticleDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IArticleRepository = (*ArticleDynamoRepository)(nil)

func NewArticleDynamoRepository(ddb *dynamodb.Client) *ArticleDynamoRepository {
	return &ArticleDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ARTICLES_TABLE", defaultArticlesTableName),
	}
}

func (r *ArticleDynamoRepository) Create(ctx context.Context, a entities.Article) (entities.Article, error) {
	av, err := attributevalue.MarshalMap(toArticleRecord(a))
	if err != nil {
		return entities.Article{}, err
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
			return entities.Article{}, interfaces.ErrAlreadyExists
		}
		return entities.Article{}, err
	}
	return a, nil
}

func (r *ArticleDynamoRepository) GetByID(ctx context.Context, id string) (entities.Article, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Article{}, err
	}
	if len(out.Item) == 0 {
		return entities.Article{}, nil
	}

	var rec articleRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return entities.Article{}, err
	}
	return fromArticleRecord(rec), nil
}

func (r *ArticleDynamoRepository) List(ctx context.Context) ([]entities.Article, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}

	var articles []entities.Article
	for {
		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var rec articleRecord
			if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
				return nil, err
			}
			articles = append(articles, fromArticleRecord(rec))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	// Oldest first, the order the catalog pages render in.
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.Before(articles[j].CreatedAt)
	})
	return articles, nil
}

// Update rewrites the mutable catalog fields. usage_count is left alone on
// purpose: it is owned by IncrementUsage, and a full-document put would
// clobber a bump landing between the caller's read and this write.
func (r *ArticleDynamoRepository) Update(ctx context.Context, a entities.Article) (entities.Article, error) {
	expr, names, values, err := articleUpdateExpression(a)
	if err != nil {
		return entities.Article{}, err
	}
	names["#id"] = "id"

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: a.ID},
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
			return entities.Article{}, nil
		}
		return entities.Article{}, err
	}

	var rec articleRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return entities.Article{}, err
	}
	return fromArticleRecord(rec), nil
}

func articleUpdateExpression(a entities.Article) (string, map[string]string, map[string]types.AttributeValue, error) {
	names := map[string]string{
		"#name":              "name",
		"#unit":              "unit",
		"#price":             "price",
		"#vat_percent":       "vat_percent",
		"#final_price":       "final_price",
		"#owner_customer_id": "owner_customer_id",
		"#updated_at":        "updated_at",
	}
	values, err := attributevalue.MarshalMap(map[string]any{
		":name":              a.Name,
		":unit":              a.Unit,
		":price":             a.Price,
		":vat_percent":       a.VATPercent,
		":final_price":       a.FinalPrice,
		":owner_customer_id": a.OwnerCustomerID,
		":updated_at":        formatTime(a.UpdatedAt),
	})
	if err != nil {
		return "", nil, nil, err
	}
	expr := "SET #name = :name, #unit = :unit, #price = :price, " +
		"#vat_percent = :vat_percent, #final_price = :final_price, " +
		"#owner_customer_id = :owner_customer_id, #updated_at = :updated_at"
	return expr, names, values, nil
}

func (r *ArticleDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
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

// IncrementUsage bumps the usage counter atomically. A missing article is
// not an error: the reference is weak and the catalog entry may have been
// deleted between resolve and bump.
func (r *ArticleDynamoRepository) IncrementUsage(ctx context.Context, id string) error {
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

func toArticleRecord(a entities.Article) articleRecord {
	return articleRecord{
		ID:              a.ID,
		Name:            a.Name,
		Unit:            a.Unit,
		Price:           a.Price,
		VATPercent:      a.VATPercent,
		FinalPrice:      a.FinalPrice,
		UsageCount:      a.UsageCount,
		OwnerCustomerID: a.OwnerCustomerID,
		CreatedAt:       formatTime(a.CreatedAt),
		UpdatedAt:       formatTime(a.UpdatedAt),
	}
}

func fromArticleRecord(rec articleRecord) entities.Article {
	return entities.Article{
		ID:              rec.ID,
		Name:            rec.Name,
		Unit:            rec.Unit,
		Price:           rec.Price,
		VATPercent:      rec.VATPercent,
		FinalPrice:      rec.FinalPrice,
		UsageCount:      rec.UsageCount,
		OwnerCustomerID: rec.OwnerCustomerID,
		CreatedAt:       parseTime(rec.CreatedAt),
		UpdatedAt:       parseTime(rec.UpdatedAt),
	}
}
