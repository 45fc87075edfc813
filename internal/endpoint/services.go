package endpoint

// Services the emulator can stand up.
const (
	APIGateway      = "apigateway"
	CloudFormation  = "cloudformation"
	CloudWatch      = "cloudwatch"
	DynamoDB        = "dynamodb"
	DynamoDBStreams = "dynamodbstreams"
	ES              = "es"
	Elasticsearch   = "elasticsearch"
	Firehose        = "firehose"
	Kinesis         = "kinesis"
	Lambda          = "lambda"
	Redshift        = "redshift"
	Route53         = "route53"
	S3              = "s3"
	SES             = "ses"
	SNS             = "sns"
	SQS             = "sqs"
)
