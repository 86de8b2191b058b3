package config

// Schema is the JSON schema for validating configuration files used by
// local runs. Lambda deployments configure through environment variables
// and never touch a config file.
const Schema = `{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "type": "object",
    "properties": {
        "producer_bucket": {
            "type": "string",
            "minLength": 1,
            "description": "Source-of-truth bucket owned by the producer account"
        },
        "consumer_bucket": {
            "type": "string",
            "minLength": 1,
            "description": "Destination bucket owned by the consumer account"
        },
        "cross_account_role_arn": {
            "type": "string",
            "minLength": 1,
            "description": "Read-only role in the producer account assumed for each run"
        },
        "external_id": {
            "type": "string",
            "minLength": 1,
            "description": "Shared secret passed on AssumeRole to prevent confused-deputy use"
        },
        "consumer_kms_key_id": {
            "type": "string",
            "minLength": 1,
            "description": "KMS key objects are re-encrypted under as they land"
        },
        "producer_kms_key_arn": {
            "type": "string",
            "minLength": 1,
            "description": "Producer-side KMS key, recorded for operators"
        },
        "transfer_prefix": {
            "type": "string",
            "description": "Optional key prefix filter; empty means all keys"
        },
        "marker_key": {
            "type": "string",
            "description": "Consumer-bucket object recording the last sync time"
        },
        "region": {
            "type": "string"
        },
        "max_concurrent_transfers": {
            "type": "integer",
            "minimum": 1
        },
        "log_level": {
            "type": "string",
            "enum": ["debug", "info", "warn", "error"]
        },
        "log_format": {
            "type": "string",
            "enum": ["json", "console"]
        }
    },
    "required": [
        "producer_bucket",
        "consumer_bucket",
        "cross_account_role_arn",
        "external_id",
        "consumer_kms_key_id",
        "producer_kms_key_arn"
    ],
    "additionalProperties": false
}`
