package application

const bucketPositional = "INT-1043, minerva-sales-landing, Landing zone for sales feeds, 123456789012, us-east-1, DataProduct, CORP, FIN, dev, owner@example.com, octocat"

const databaseKeyValue = `intake_id: INT-1042
database_name: minerva_sales_raw
database_s3_location: s3://minerva-sales/raw/
database_description: Raw sales extracts
aws_account_id: "123456789012"
source_name: sap_ecc
enterprise_or_func_name: CORP
enterprise_or_func_subgrp_name: FIN
region: us-east-1
data_construct: Source
data_env: dev
data_layer: raw
data_leader: Jane Doe
data_owner_email: jane.doe@example.com`

const roleYAML = `intake_id: INT-1044
role_name: minerva-sales-analyst
role_description: Analyst access to sales data
aws_account_id: 123456789012
enterprise_or_func_name: CORP
enterprise_or_func_subgrp_name: FIN
role_owner: jane.doe@example.com
data_env: dev
usage_type: Analyst
compute_size: SML
max_session_duration: 4
access_to_resources:
  glue_databases:
    minerva_sales_raw: [read, write]
  execution_asset_prefixes:
    - s3://minerva-sales/jobs/
glue_job_access_configs:
  enable_glue_jobs: true
  secret_name: sales/creds
athena:
  workgroup: analysts`
